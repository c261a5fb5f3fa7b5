package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"optimesheet/timesheet"
)

// ExcelWriter renders the report as a styled worksheet: bold white-on-blue
// header row, thin borders, fixed column widths, wrapped description column.
type ExcelWriter struct {
	// SheetName labels the worksheet, typically the exported month.
	// Empty keeps the workbook's default sheet name.
	SheetName string
}

const (
	headerFillColor = "4472C4"
	headerFontColor = "FFFFFF"
)

var columnWidths = []float64{12, 14, 10, 80}

func (w *ExcelWriter) Write(path string, rows []timesheet.Row) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if w.SheetName != "" {
		if err := file.SetSheetName(sheet, w.SheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		sheet = w.SheetName
	}

	headerStyle, centeredStyle, wrappedStyle, err := buildStyles(file)
	if err != nil {
		return err
	}

	for col, header := range timesheet.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
		if err := file.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style excel header %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		rowNum := i + 2
		values := []any{row.Date, row.Hours, row.Location, row.Description}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
			style := centeredStyle
			if col == len(values)-1 {
				style = wrappedStyle
			}
			if err := file.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("style excel value %s: %w", cell, err)
			}
		}
	}

	for col, width := range columnWidths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := file.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("set excel column width %s: %w", name, err)
		}
	}
	if err := file.SetRowHeight(sheet, 1, 30); err != nil {
		return fmt.Errorf("set excel header height: %w", err)
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

func buildStyles(file *excelize.File) (header, centered, wrapped int, err error) {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFontColor, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    borders,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create excel header style: %w", err)
	}

	centered, err = file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create excel cell style: %w", err)
	}

	wrapped, err = file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    borders,
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("create excel text style: %w", err)
	}

	return header, centered, wrapped, nil
}
