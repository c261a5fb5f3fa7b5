package timeutil

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMonth reports a month argument that is not a valid "YYYY-MM".
var ErrInvalidMonth = errors.New("invalid month")

const (
	DayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Restricted ISO-8601 duration grammar: optional date part (ignored for hour
// computation), optional time part with H, M, S in fixed order.
var isoDurationRe = regexp.MustCompile(`^P(?:\d+Y)?(?:\d+M)?(?:\d+D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ISODurationHours converts an ISO-8601 duration such as "PT5H30M" into
// decimal hours rounded to two places, half away from zero. Empty or
// malformed input yields 0 rather than an error so that a bad duration on a
// single entry never aborts an export.
func ISODurationHours(value string) float64 {
	if value == "" {
		return 0
	}
	match := isoDurationRe.FindStringSubmatch(value)
	if match == nil {
		return 0
	}
	hours := durationGroup(match[1])
	minutes := durationGroup(match[2])
	seconds := durationGroup(match[3])
	total := float64(hours) + float64(minutes)/60 + float64(seconds)/3600
	return math.Round(total*100) / 100
}

func durationGroup(value string) int {
	if value == "" {
		return 0
	}
	parsed, _ := strconv.Atoi(value)
	return parsed
}

// MonthBounds returns the first and last calendar day of a "YYYY-MM" month.
func MonthBounds(value string) (time.Time, time.Time, error) {
	parsed, err := time.ParseInLocation(monthLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}
	first := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}
