// Package table holds the in-memory shape every decoded spreadsheet is reduced
// to: ordered column labels and ordered rows of typed cells.
package table

import (
	"fmt"
	"strings"
)

// Table is an immutable decoded sheet. Row order is preserved from the source.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// Row is one data row. Cells are addressed by column position or label.
type Row struct {
	index map[string]int
	cells []CellValue
}

// New builds a table from header labels and rows of cells. Empty labels become
// "Unnamed: <i>" and repeated labels get a ".<n>" suffix, so every label
// addresses exactly one column. Rows are padded with Missing to the table width.
func New(header []string, records [][]CellValue) *Table {
	width := len(header)
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	t := &Table{
		columns: make([]string, width),
		index:   make(map[string]int, width),
		rows:    make([]Row, 0, len(records)),
	}
	for i := 0; i < width; i++ {
		label := ""
		if i < len(header) {
			label = strings.TrimSpace(header[i])
		}
		if label == "" {
			label = fmt.Sprintf("Unnamed: %d", i)
		}
		label = t.uniqueLabel(label)
		t.columns[i] = label
		t.index[label] = i
	}

	for _, rec := range records {
		cells := make([]CellValue, width)
		copy(cells, rec)
		t.rows = append(t.rows, Row{index: t.index, cells: cells})
	}
	return t
}

// FromStrings builds a table from raw text, classifying each cell with ParseRaw
func FromStrings(header []string, records [][]string) *Table {
	rows := make([][]CellValue, len(records))
	for i, rec := range records {
		cells := make([]CellValue, len(rec))
		for j, raw := range rec {
			cells[j] = ParseRaw(raw)
		}
		rows[i] = cells
	}
	return New(header, rows)
}

func (t *Table) uniqueLabel(label string) string {
	if _, taken := t.index[label]; !taken {
		return label
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s.%d", label, n)
		if _, taken := t.index[candidate]; !taken {
			return candidate
		}
	}
}

// Columns returns a copy of the column labels in table order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Label returns the label of column col
func (t *Table) Label(col int) string {
	if col < 0 || col >= len(t.columns) {
		return ""
	}
	return t.columns[col]
}

// Index returns the position of the column with the given label
func (t *Table) Index(label string) (int, bool) {
	i, ok := t.index[label]
	return i, ok
}

// Preceding returns the column immediately to the left of col
func (t *Table) Preceding(col int) (int, bool) {
	if col <= 0 || col >= len(t.columns) {
		return 0, false
	}
	return col - 1, true
}

func (t *Table) Width() int { return len(t.columns) }
func (t *Table) Len() int   { return len(t.rows) }

// Row returns row i. Out of range rows are empty.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= len(t.rows) {
		return Row{index: t.index}
	}
	return t.rows[i]
}

// Rows returns the data rows in source order
func (t *Table) Rows() []Row {
	return t.rows
}

// Cell returns the cell at column col, Missing when out of range
func (r Row) Cell(col int) CellValue {
	if col < 0 || col >= len(r.cells) {
		return CellValue{}
	}
	return r.cells[col]
}

// Get returns the cell under label, Missing when no such column exists
func (r Row) Get(label string) CellValue {
	col, ok := r.index[label]
	if !ok {
		return CellValue{}
	}
	return r.Cell(col)
}

func (r Row) Len() int { return len(r.cells) }
