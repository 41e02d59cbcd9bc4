package views

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// ParseDue reads "YYYY-MM-DD" or "YYYY-MM-DD HH:MM" in loc. A date alone is
// midnight, which means all day. Blank input clears the due date.
func ParseDue(input string, loc *time.Location) (*time.Time, error) {
	input = strings.Join(strings.Fields(input), " ")
	if input == "" {
		return nil, nil
	}
	for _, layout := range []string{dateTimeLayout, dateLayout} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("due date must look like %s or %s", dateLayout, dateTimeLayout)
}

// FormatDue is the inverse of ParseDue
func FormatDue(due *time.Time) string {
	if due == nil {
		return ""
	}
	if due.Hour() == 0 && due.Minute() == 0 {
		return due.Format(dateLayout)
	}
	return due.Format(dateTimeLayout)
}
