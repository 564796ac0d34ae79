package dataprocessing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"acadreports/internal/table"
)

// ErrUnsupportedFormat is wrapped by DecodeError when no backend can read a file
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Decoder turns uploaded bytes into a table
type Decoder interface {
	Name() string
	Decode(content []byte) (*table.Table, error)
}

// Attempt is the outcome of one failed backend
type Attempt struct {
	Backend string
	Err     error
}

// DecodeError lists why every backend rejected a file
type DecodeError struct {
	Filename string
	Attempts []Attempt
}

func (e *DecodeError) Error() string {
	reasons := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		reasons[i] = fmt.Sprintf("%s: %v", a.Backend, a.Err)
	}
	return "Не удалось прочитать файл. Ошибки: " + strings.Join(reasons, "; ")
}

func (e *DecodeError) Unwrap() error { return ErrUnsupportedFormat }

// Parser tries the decoding backends in the order the file name suggests
type Parser struct {
	xlsx   Decoder
	xls    Decoder
	csv    Decoder
	logger *slog.Logger
}

// NewParser creates a parser with the xlsx, legacy xls and csv backends
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		xlsx:   XLSXDecoder{},
		xls:    XLSDecoder{},
		csv:    CSVDecoder{},
		logger: logger.With(slog.String("component", "parser")),
	}
}

// Order returns the backends to try for filename. Legacy .xls files go to the
// BIFF reader first; everything else is assumed to be a modern workbook.
func (p *Parser) Order(filename string) []Decoder {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return []Decoder{p.xls, p.xlsx, p.csv}
	case ".csv", ".txt":
		return []Decoder{p.csv, p.xlsx, p.xls}
	default:
		return []Decoder{p.xlsx, p.xls, p.csv}
	}
}

// Decode reads content with the first backend that accepts it
func (p *Parser) Decode(ctx context.Context, filename string, content []byte) (*table.Table, error) {
	decodeErr := &DecodeError{Filename: filename}

	for _, d := range p.Order(filename) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		t, err := decodeSafely(d, content)
		if err != nil {
			p.logger.DebugContext(ctx, "decoder rejected file",
				slog.String("backend", d.Name()),
				slog.String("filename", filename),
				slog.String("error", err.Error()))
			decodeErr.Attempts = append(decodeErr.Attempts, Attempt{Backend: d.Name(), Err: err})
			continue
		}

		p.logger.InfoContext(ctx, "file decoded",
			slog.String("backend", d.Name()),
			slog.String("filename", filename),
			slog.Int("columns", t.Width()),
			slog.Int("rows", t.Len()),
			slog.Duration("duration", time.Since(start)))
		return t, nil
	}

	p.logger.WarnContext(ctx, "no decoder could read file",
		slog.String("filename", filename),
		slog.Int("attempts", len(decodeErr.Attempts)))
	return nil, decodeErr
}

// ParseFile decodes a spreadsheet from disk
func (p *Parser) ParseFile(ctx context.Context, path string) (*table.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.Decode(ctx, filepath.Base(path), content)
}

// decodeSafely converts a backend panic on malformed input into an error
func decodeSafely(d Decoder, content []byte) (t *table.Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return d.Decode(content)
}

// fromRows uses the first row as column labels and the rest as data.
// Trailing blank rows are dropped; blank rows in between are kept so row
// numbers still match the sheet.
func fromRows(rows [][]string) *table.Table {
	last := len(rows) - 1
	for last >= 0 && isBlank(rows[last]) {
		last--
	}
	rows = rows[:last+1]
	if len(rows) == 0 {
		return table.New(nil, nil)
	}
	return table.FromStrings(rows[0], rows[1:])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
