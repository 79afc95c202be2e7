// Package strutil holds small string conversion helpers used by HTTP handlers.
package strutil

import "strconv"

// ConvertToInt parses s as a base-10 int, returning 0 when s is not a number
func ConvertToInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// ConvertToIntOr parses s as a base-10 int, returning def when s is empty, not a number or not positive
func ConvertToIntOr(s string, def int) int {
	v := ConvertToInt(s)
	if v <= 0 {
		return def
	}
	return v
}

// Prefix returns the first n characters of s followed by "..." when s is longer
func Prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
