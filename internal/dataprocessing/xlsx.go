package dataprocessing

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"acadreports/internal/table"
)

// XLSXDecoder reads Office Open XML workbooks with excelize. Only the first
// sheet is used and cells are read with their display formatting, so times
// come out as "09:00" rather than day fractions.
type XLSXDecoder struct{}

func (XLSXDecoder) Name() string { return "xlsx" }

func (XLSXDecoder) Decode(content []byte) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}

// XLSDecoder reads legacy BIFF (Excel 97-2003) workbooks
type XLSDecoder struct{}

func (XLSDecoder) Name() string { return "xls" }

func (XLSDecoder) Decode(content []byte) (*table.Table, error) {
	wb, err := xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return fromRows(rows), nil
}
