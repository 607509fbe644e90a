// ABOUTME: Spreadsheet export of an entity table's filtered, sorted view
// ABOUTME: Writes one sheet per export with a bold header row
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/models"
)

// WriteXLSX writes every filtered, sorted record of t (all pages) to w.
func WriteXLSX(w io.Writer, t entities.Table) error {
	return WriteRows(w, t.Title(), t.Columns(), t.All())
}

// WriteRows writes rows under an ID column followed by columns.
func WriteRows(w io.Writer, sheet string, columns []entities.Column, rows []entities.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, 0, len(columns)+1)
	header = append(header, "ID")
	for _, c := range columns {
		header = append(header, c.Title)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		values := make([]any, 0, len(columns)+1)
		values = append(values, r.ID)
		for _, c := range columns {
			values = append(values, cellValue(r.Fields[c.Key]))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	for i, c := range columns {
		col, _ := excelize.ColumnNumberToName(i + 2)
		if c.Width > 0 {
			_ = f.SetColWidth(sheet, col, col, float64(c.Width))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellValue(v any) any {
	switch val := v.(type) {
	case float64, string:
		return val
	}
	return models.FormatValue(v)
}
