package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)

	tests := []struct {
		in      string
		want    *time.Time
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "   ", want: nil},
		{in: "2024-05-10", want: ptr(time.Date(2024, 5, 10, 0, 0, 0, 0, loc))},
		{in: "2024-05-10 14:30", want: ptr(time.Date(2024, 5, 10, 14, 30, 0, 0, loc))},
		{in: " 2024-05-10   14:30 ", want: ptr(time.Date(2024, 5, 10, 14, 30, 0, 0, loc))},
		{in: "tomorrow", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "2024-05-10 25:00", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDue(tt.in, loc)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		if tt.want == nil {
			assert.Nil(t, got, tt.in)
			continue
		}
		require.NotNil(t, got, tt.in)
		assert.True(t, tt.want.Equal(*got), tt.in)
	}
}

func TestFormatDueRoundTrip(t *testing.T) {
	for _, in := range []string{"2024-05-10", "2024-05-10 09:05"} {
		due, err := ParseDue(in, time.Local)
		require.NoError(t, err)
		assert.Equal(t, in, FormatDue(due))
	}
	assert.Equal(t, "", FormatDue(nil))
}

func ptr(t time.Time) *time.Time { return &t }
