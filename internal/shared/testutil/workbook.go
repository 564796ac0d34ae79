package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Workbook builds an xlsx file in memory with rows written to Sheet1
// starting at A1
func Workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		row := row
		if err := f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+1), &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// WriteWorkbook saves Workbook(rows) as dir/name and returns the path
func WriteWorkbook(t *testing.T, dir, name string, rows ...[]interface{}) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Workbook(t, rows...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// StudentHomeworkRows is a two-student sheet where only the first student
// is below the homework completion threshold
func StudentHomeworkRows() [][]interface{} {
	return [][]interface{}{
		{"ФИО студента", "Процент выполнения ДЗ"},
		{"Кузнецова А.", 45},
		{"Смирнов Б.", 90},
	}
}
