package table

import (
	"math"
	"strconv"
	"strings"
)

// baseSentinels are placeholders that never name a real entity
var baseSentinels = []string{"nan", "none", ""}

// Normalize converts a cell to its numeric view. Text has every "%" removed and
// surrounding "-" and whitespace trimmed before parsing; anything that still
// fails to parse becomes Missing. "30%" normalizes to 30, not 0.3.
func Normalize(c CellValue) CellValue {
	return normalize(c, "%")
}

// NormalizePercent is Normalize that also drops every "-" inside the text,
// as completion columns use dashes as filler ("-70-%"). A numeric cell loses
// its sign the same way.
func NormalizePercent(c CellValue) CellValue {
	if c.kind == Number && c.num < 0 {
		return CellValue{kind: Number, num: math.Abs(c.num), text: c.text}
	}
	return normalize(c, "%-")
}

func normalize(c CellValue, remove string) CellValue {
	switch c.kind {
	case Number:
		return c
	case Missing:
		return c
	}

	s := c.text
	for _, r := range remove {
		s = strings.ReplaceAll(s, string(r), "")
	}
	s = strings.Trim(s, "- \t\r\n\u00a0")
	if s == "" {
		return CellValue{}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return CellValue{}
	}
	return CellValue{kind: Number, num: f, text: c.text}
}

// NumberOf is the numeric payload of Normalize(c)
func NumberOf(c CellValue) (float64, bool) {
	return Normalize(c).Float()
}

// IsSentinel reports whether s is a placeholder for an absent identity.
// The comparison is case-insensitive.
func IsSentinel(s string, extra ...string) bool {
	lower := strings.ToLower(s)
	for _, v := range baseSentinels {
		if lower == v {
			return true
		}
	}
	for _, v := range extra {
		if lower == strings.ToLower(v) {
			return true
		}
	}
	return false
}

// Identity returns the text of a name-like cell, rejecting missing cells and
// sentinel placeholders
func Identity(c CellValue, extra ...string) (string, bool) {
	if c.IsMissing() {
		return "", false
	}
	s := c.String()
	if IsSentinel(s, extra...) {
		return "", false
	}
	return s, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
