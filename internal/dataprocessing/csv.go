package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"acadreports/internal/table"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	zipMagic   = []byte("PK\x03\x04")
	oleMagic   = []byte{0xD0, 0xCF, 0x11, 0xE0}
	delimiters = []rune{',', ';', '\t'}
)

// CSVDecoder reads delimited text exports. UTF-8 is preferred; anything that
// is not valid UTF-8 is read as Windows-1251, the usual Cyrillic Excel export.
type CSVDecoder struct{}

func (CSVDecoder) Name() string { return "csv" }

func (CSVDecoder) Decode(content []byte) (*table.Table, error) {
	if bytes.HasPrefix(content, zipMagic) || bytes.HasPrefix(content, oleMagic) || bytes.IndexByte(content, 0) >= 0 {
		return nil, errors.New("binary content is not delimited text")
	}

	text, err := decodeText(content)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("no columns to parse from file")
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return fromRows(records), nil
}

func decodeText(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content), nil
	}
	decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), content)
	if err != nil {
		return "", fmt.Errorf("failed to decode windows-1251: %w", err)
	}
	return string(decoded), nil
}

// sniffDelimiter picks the candidate that occurs most often in the header line
func sniffDelimiter(text string) rune {
	header, _, _ := strings.Cut(text, "\n")
	best, bestCount := ',', 0
	for _, d := range delimiters {
		if n := strings.Count(header, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
