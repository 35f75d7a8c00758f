package model

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for due dates.
const DateLayout = "2006-01-02"

// ParseDate reports whether raw is a valid YYYY-MM-DD date.
func ParseDate(raw string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
