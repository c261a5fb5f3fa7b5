package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"optimesheet/timesheet"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, rows []timesheet.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(timesheet.Headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Date,
			strconv.FormatFloat(row.Hours, 'f', 2, 64),
			row.Location,
			row.Description,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
