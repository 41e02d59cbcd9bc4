package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	var s State
	assert.Equal(t, ViewTasks, s.Current())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestEditAndBack(t *testing.T) {
	var s State
	s.Edit("42")
	assert.Equal(t, ViewEditTask, s.Current())
	id, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "42", id)

	s.Back()
	assert.Equal(t, ViewTasks, s.Current())
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestDeletingEditedTaskReturnsToList(t *testing.T) {
	var s State
	s.Edit("42")
	s.TaskDeleted("7")
	assert.Equal(t, ViewEditTask, s.Current(), "other task deleted")

	s.TaskDeleted("42")
	assert.Equal(t, ViewTasks, s.Current())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestDeleteOutsideEditorKeepsPage(t *testing.T) {
	var s State
	s.Go(ViewCalendar)
	s.TaskDeleted("42")
	assert.Equal(t, ViewCalendar, s.Current())
}

func TestEditWithoutSelectionShowsList(t *testing.T) {
	var s State
	s.Go(ViewEditTask)
	assert.Equal(t, ViewTasks, s.Current())
}

func TestReset(t *testing.T) {
	var s State
	s.Edit("1")
	s.Reset()
	assert.Equal(t, ViewTasks, s.Current())
	assert.Equal(t, "summary", ViewSummary.String())
}
