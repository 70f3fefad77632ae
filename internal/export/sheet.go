package export

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

// Sheet writes the table to a single-sheet workbook.
func Sheet(t Table, name string) (*File, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[Export] Failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]any, 0, t.RowCount())
	rows = append(rows, headerCells(t.Header))
	rows = append(rows, t.Rows...)
	rows = append(rows, t.Totals)

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetName, len(rows), len(rows), bold); err != nil {
		return nil, err
	}

	last, err := excelize.ColumnNumberToName(len(t.Header))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "A", last, 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &File{Name: name, ContentType: ContentTypeXLSX, Data: buf.Bytes()}, nil
}

func headerCells(h []string) []any {
	out := make([]any, len(h))
	for i, v := range h {
		out[i] = v
	}
	return out
}
