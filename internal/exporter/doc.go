// Package exporter renders extracted reports as CSV or XLSX downloads.
//
// Every report variant is first flattened into a Sheet: a header row plus
// one row per payload record. Numbers stay numeric in workbooks. CSV output
// carries a UTF-8 BOM so Excel detects the Cyrillic text.
//
//	sheet, err := exporter.Flatten(report)
//	err = exporter.WriteCSV(w, sheet, exporter.WriteOptions{BOMPrefix: true})
//
//	// or in one step
//	err = exporter.Export(w, report, exporter.FormatXLSX)
package exporter
