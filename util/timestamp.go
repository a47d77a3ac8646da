package util

import (
	"strings"
	"time"

	"github.com/mailio/go-campaign-console/types"
)

// TimestampLayout is the textual form every schedule time is sent in
const TimestampLayout = "2006-01-02 15:04"

var acceptedLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// NormalizeTimestamp turns date/time input into "YYYY-MM-DD HH:MM" (space separated,
// truncated to minutes). The wall clock time is kept as entered, no zone conversion.
func NormalizeTimestamp(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", types.ErrInvalidTimestamp
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimestampLayout), nil
		}
	}
	return "", types.ErrInvalidTimestamp
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
