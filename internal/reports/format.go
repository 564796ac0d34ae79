package reports

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// round1 rounds to one decimal place for display. The exact binary value is
// rounded once, half to even, so 19.95 stays 19.9 and 0.35 becomes 0.3.
func round1(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// formatGrade prints a float the way stored report messages always have:
// whole numbers keep a trailing ".0" ("1.0"), others use the shortest form.
func formatGrade(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// truncateRunes cuts s to n runes, appending "..." when something was cut
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
