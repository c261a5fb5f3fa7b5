package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"optimesheet/internal/timeutil"
	"optimesheet/openproject"
)

type exportFakeDoer struct {
	fn func(*http.Request) (*http.Response, error)
}

func (f exportFakeDoer) Do(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

func exportJSONResponse(payload string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(payload)),
		Header:     make(http.Header),
	}
}

func TestDetectExportFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want string
	}{
		{"./report.csv", "csv"},
		{"./report.CSV", "csv"},
		{"./report.xlsx", "excel"},
		{"./report.xlsm", "excel"},
		{"./report.xls", "excel"},
		{"./report.out", "excel"},
		{"timesheet-2024-03", "excel"},
	}
	for _, tc := range cases {
		if got := detectExportFormat(tc.path); got != tc.want {
			t.Fatalf("detectExportFormat(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestRunExport_EndToEnd(t *testing.T) {
	t.Parallel()

	page := `{
		"_embedded": {"elements": [
			{
				"spentOn": "2024-03-05",
				"hours": "PT8H",
				"comment": {"raw": "  Fixed   bug  "},
				"_links": {
					"entity": {"href": "/api/v3/work_packages/7"},
					"activity": {"href": "/api/v3/time_entries/activities/1", "title": "Development"}
				}
			}
		]}
	}`

	var requestedPath string
	clientCfg := openproject.ClientConfig{
		BaseURL: "https://openproject.example.com",
		APIKey:  "secret",
		HTTPClient: exportFakeDoer{fn: func(r *http.Request) (*http.Response, error) {
			requestedPath = r.URL.Path
			return exportJSONResponse(page), nil
		}},
	}

	outPath := filepath.Join(t.TempDir(), "march.csv")
	count, err := runExport(context.Background(), clientCfg, exportOptions{
		Month:    "2024-03",
		Output:   outPath,
		Format:   "csv",
		User:     "me",
		PageSize: 200,
	})
	if err != nil {
		t.Fatalf("run export: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
	if requestedPath != "/api/v3/time_entries" {
		t.Fatalf("unexpected request path: %s", requestedPath)
	}

	file, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
	row := records[1]
	if row[0] != "2024-03-05" || row[1] != "8.00" || row[2] != "remote" || row[3] != "7_Development_Fixed bug" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestRunExport_InvalidMonthFailsBeforeAnyRequest(t *testing.T) {
	t.Parallel()

	clientCfg := openproject.ClientConfig{
		BaseURL: "https://openproject.example.com",
		APIKey:  "secret",
		HTTPClient: exportFakeDoer{fn: func(r *http.Request) (*http.Response, error) {
			t.Fatalf("no request expected for invalid month")
			return nil, nil
		}},
	}

	_, err := runExport(context.Background(), clientCfg, exportOptions{
		Month:    "2024-13",
		Output:   filepath.Join(t.TempDir(), "out.csv"),
		Format:   "csv",
		User:     "me",
		PageSize: 200,
	})
	if !errors.Is(err, timeutil.ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestRunExport_PageFailureWritesNoFile(t *testing.T) {
	t.Parallel()

	clientCfg := openproject.ClientConfig{
		BaseURL: "https://openproject.example.com",
		APIKey:  "secret",
		HTTPClient: exportFakeDoer{fn: func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Body:       io.NopCloser(strings.NewReader("maintenance")),
				Header:     make(http.Header),
			}, nil
		}},
	}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	_, err := runExport(context.Background(), clientCfg, exportOptions{
		Month:    "2024-03",
		Output:   outPath,
		Format:   "csv",
		User:     "me",
		PageSize: 200,
	})

	var fetchErr *openproject.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Fatalf("no output file expected on failure")
	}
}
