package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDarkSwitchesStyles(t *testing.T) {
	t.Cleanup(func() { SetDark(false) })

	SetDark(true)
	assert.Equal(t, TokyoNight.Name, Current.Name)
	dark := NewStyles()
	assert.Equal(t, TokyoNight.Primary, dark.Title.GetForeground())
	assert.Equal(t, TokyoNight.Error, dark.PriorityHigh.GetForeground())

	SetDark(false)
	assert.Equal(t, TokyoNightDay.Name, Current.Name)
	light := NewStyles()
	assert.Equal(t, TokyoNightDay.Primary, light.Title.GetForeground())
	assert.True(t, light.TaskDone.GetStrikethrough())

	// styles built earlier keep their colors
	assert.Equal(t, TokyoNight.Primary, dark.Title.GetForeground())
}
