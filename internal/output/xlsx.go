package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/example/gtmscan/internal/model"
)

// xlsxSheet is the sheet holding the results.
const xlsxSheet = "Results"

// WriteXLSX writes the same rows as WriteCSV into a spreadsheet.
func WriteXLSX(w io.Writer, rs model.ResultSet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeXLSXRow(f, 1, Columns); err != nil {
		return err
	}
	for i, res := range rs {
		if err := writeXLSXRow(f, i+2, resultRow(res)); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolving cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
