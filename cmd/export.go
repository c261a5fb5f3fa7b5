package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"optimesheet/config"
	"optimesheet/internal/timeutil"
	"optimesheet/openproject"
	"optimesheet/output"
	"optimesheet/timesheet"
)

var (
	exportMonth      string
	exportOutput     string
	exportFormat     string
	exportUser       string
	exportPageSize   int
	exportLocationCF string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one month of time entries to Excel or CSV",
	Long: `Export your OpenProject time entries for one calendar month.

Entries are fetched page by page, sorted by date then id, and flattened into
rows of {date, working hours, location, assignment_activity_comment}. The
location column comes from the configured custom field when one is set, and
defaults to "remote" otherwise.

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export the current month
  optimesheet export

  # Export March 2024 for another user
  optimesheet export --month 2024-03 --user 42 --output ./march.xlsx

  # Use a list-type custom field for the Location column
  optimesheet export --month 2024-03 --location-cf customField7

  # Force CSV independent of extension
  optimesheet export --month 2024-03 --format csv --output ./march.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		opts := exportOptions{
			Month:         exportMonth,
			Output:        exportOutput,
			Format:        exportFormat,
			User:          cfg.Export.User,
			PageSize:      cfg.Export.PageSize,
			LocationField: cfg.Export.LocationField,
		}
		if cmd.Flags().Changed("user") {
			opts.User = exportUser
		}
		if cmd.Flags().Changed("page-size") {
			opts.PageSize = exportPageSize
		}
		if cmd.Flags().Changed("location-cf") {
			opts.LocationField = exportLocationCF
		}
		if strings.TrimSpace(opts.Month) == "" {
			opts.Month = time.Now().Format("2006-01")
		}
		if strings.TrimSpace(opts.Output) == "" {
			opts.Output = fmt.Sprintf("timesheet-%s.xlsx", opts.Month)
		}
		if strings.TrimSpace(opts.Format) == "" {
			opts.Format = detectExportFormat(opts.Output)
		}

		clientCfg := openproject.ClientConfig{
			BaseURL: cfg.OpenProject.BaseURL,
			APIKey:  cfg.OpenProject.APIKey,
		}

		count, err := runExport(cmd.Context(), clientCfg, opts)
		if err != nil {
			return err
		}

		fmt.Printf("Export completed. Rows: %d, Month: %s, File: %s\n", count, opts.Month, opts.Output)
		return nil
	},
}

type exportOptions struct {
	Month         string
	Output        string
	Format        string
	User          string
	PageSize      int
	LocationField string
}

// runExport performs one full export run: resolve the month window, page
// through the filtered collection, normalize every entry, render the file.
// It returns the number of rows written.
func runExport(ctx context.Context, clientCfg openproject.ClientConfig, opts exportOptions) (int, error) {
	first, last, err := timeutil.MonthBounds(opts.Month)
	if err != nil {
		return 0, err
	}

	client, err := openproject.NewClient(clientCfg)
	if err != nil {
		return 0, err
	}

	writer, err := output.WriterForFormat(opts.Format, opts.Month)
	if err != nil {
		return 0, err
	}

	queryURL := client.TimeEntriesURL(first, last, opts.User, opts.PageSize)
	resolver := timesheet.Resolver{
		Cache: openproject.NewOptionCache(),
		Fetch: client.GetOption,
	}

	rows, err := timesheet.BuildRows(ctx, client.TimeEntries(queryURL), resolver, opts.LocationField)
	if err != nil {
		return 0, err
	}

	if err := writer.Write(opts.Output, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "excel"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportMonth, "month", "m", "", "Month to export, format YYYY-MM (default: current month)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: ./timesheet-YYYY-MM.xlsx)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVar(&exportUser, "user", "", "User id or 'me' (overrides config)")
	exportCmd.Flags().IntVar(&exportPageSize, "page-size", 0, "API page size (overrides config)")
	exportCmd.Flags().StringVar(&exportLocationCF, "location-cf", "", "Custom field key for Location, e.g. customField7 (overrides config)")
}
