package util

import (
	"strconv"
	"strings"
)

// Decodes a string to an int (0 when it isn't a number)
func StringToInt(str string) int {
	atoi, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0
	}
	return atoi
}

func IsNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// StringOr returns *s or def when s is nil or empty
func StringOr(s *string, def string) string {
	if IsNilOrEmpty(s) {
		return def
	}
	return *s
}

// FormatLimit renders a quota value, nil (and 0 for limits) meaning unlimited
func FormatLimit(limit *int) string {
	if limit == nil || *limit == 0 {
		return "unlimited"
	}
	return strconv.Itoa(*limit)
}

// FormatRemaining renders the remaining quota, nil meaning unlimited
func FormatRemaining(remaining *int) string {
	if remaining == nil {
		return "unlimited"
	}
	return strconv.Itoa(*remaining)
}

// SplitList splits a comma separated list, dropping empty items
func SplitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// IsNumber checks if a given string represents a valid number (integer or float)
func IsNumber(s string) bool {
	// Try parsing as an integer
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}

	// Try parsing as a float
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}

	return false
}
