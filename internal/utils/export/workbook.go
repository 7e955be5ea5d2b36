package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used when the caller does not name the sheet.
const DefaultSheetName = "Sheet1"

// WriteWorkbook renders flattened records into an xlsx workbook on w. Column
// order determines cell order; the first row holds the labels. This is a pure
// data-to-byte-stream transformation with no business logic.
func WriteWorkbook(flatRows []map[string]any, columns []Column, sheetName string, w io.Writer) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetName, err)
	}
	f.SetActiveSheet(index)
	if sheetName != DefaultSheetName {
		// NewFile always seeds a default sheet; drop it so the workbook has one sheet.
		_ = f.DeleteSheet(DefaultSheetName)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Label); err != nil {
			return fmt.Errorf("failed to write header %q: %w", col.Label, err)
		}
	}

	for rowIdx, record := range flatRows {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(record[col.Label])); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellValue normalizes values excelize cannot render natively.
func cellValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format("2006-01-02")
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}
