package timesheet

// DefaultLocation is used whenever no location custom field is configured or
// the configured field resolves to nothing.
const DefaultLocation = "remote"

// Headers is the report column order expected by the output writers.
var Headers = []string{"Date", "working hours", "Location", "Assignment number_Activity_Work content"}

// Row is one flat line of the monthly report, derived deterministically from
// exactly one raw time entry.
type Row struct {
	Date        string
	Hours       float64
	Location    string
	Description string
}
