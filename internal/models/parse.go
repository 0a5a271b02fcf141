package models

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats produced by the back-office API.
// Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// isDateOnly reports whether s is a bare calendar date with no time of day.
func isDateOnly(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}

// ParsePrice parses a formatted amount such as "KSh 2,340", "$129" or "234.99".
// Currency symbols or codes before or after the number are dropped and commas are read as
// thousands separators.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	if start > 0 && s[start-1] == '.' {
		start--
	}
	if start > 0 && s[start-1] == '-' {
		start--
	}
	s = s[start:]
	end := strings.LastIndexFunc(s, unicode.IsDigit)
	if end < 0 {
		return 0, false
	}
	s = strings.ReplaceAll(s[:end+1], ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
