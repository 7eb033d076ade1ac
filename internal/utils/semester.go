package utils

import "strings"

// NormalizeSemester strips ordinal suffixes from a semester token so the
// values students type ("1st", "3rd") compare equal to the stored ones ("1",
// "3").
func NormalizeSemester(sem string) string {
	s := strings.ToLower(strings.TrimSpace(sem))
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			trimmed := s[:len(s)-len(suffix)]
			if isDigits(trimmed) {
				return trimmed
			}
		}
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
