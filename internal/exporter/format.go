package exporter

import (
	"fmt"
	"strconv"
	"strings"
)

// Format selects the export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of f
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension of f, with the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// formatFloat drops trailing zeros: 35.5 stays 35.5, 40 becomes 40
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case float64:
		return formatFloat(c)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}
