package output

import (
	"fmt"
	"strings"

	"optimesheet/timesheet"
)

type Writer interface {
	Write(path string, rows []timesheet.Row) error
}

// WriterForFormat returns the writer for a format name. sheetName labels the
// worksheet for spreadsheet formats and is ignored by CSV.
func WriterForFormat(format, sheetName string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{SheetName: sheetName}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
