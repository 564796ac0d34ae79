package exporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"acadreports/pkg/contracts/domain"
)

// ErrUnsupportedFormat is returned for an export format other than csv or xlsx
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export writes report to w in the given format. CSV output carries a BOM.
func Export(w io.Writer, report domain.Report, format Format) error {
	sheet, err := Flatten(report)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return WriteCSV(w, sheet, WriteOptions{BOMPrefix: true})
	case FormatXLSX:
		return WriteXLSX(w, sheet)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportFile writes report to path, creating parent directories
func ExportFile(path string, report domain.Report, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Export(file, report, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Filename builds the download name of an exported report
func Filename(kind domain.ReportKind, id string, format Format) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s_%s%s", kind, short, format.Extension())
}
