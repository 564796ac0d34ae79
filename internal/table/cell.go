package table

import (
	"strconv"
	"strings"
)

// Kind is the runtime type of a cell
type Kind uint8

const (
	Missing Kind = iota
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "missing"
	}
}

// CellValue is a decoded spreadsheet cell. The zero value is Missing.
type CellValue struct {
	kind Kind
	text string
	num  float64
}

// MissingCell returns an absent cell
func MissingCell() CellValue { return CellValue{} }

// TextCell returns a text cell
func TextCell(s string) CellValue { return CellValue{kind: Text, text: s} }

// NumberCell returns a numeric cell printed in its shortest form
func NumberCell(f float64) CellValue {
	return CellValue{kind: Number, num: f, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ParseRaw classifies decoded cell text. Blank text is Missing, plain numbers
// are Number (keeping the original spelling) and everything else is Text.
func ParseRaw(raw string) CellValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CellValue{}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && isFinite(f) {
		return CellValue{kind: Number, num: f, text: trimmed}
	}
	return CellValue{kind: Text, text: raw}
}

func (c CellValue) Kind() Kind      { return c.kind }
func (c CellValue) IsMissing() bool { return c.kind == Missing }

// String returns the cell as it was written, or "" when missing
func (c CellValue) String() string {
	return c.text
}

// Float returns the numeric payload of a Number cell
func (c CellValue) Float() (float64, bool) {
	if c.kind != Number {
		return 0, false
	}
	return c.num, true
}
