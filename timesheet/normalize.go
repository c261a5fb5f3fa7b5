package timesheet

import (
	"context"
	"strings"

	"optimesheet/internal/timeutil"
	"optimesheet/openproject"
)

// Resolver carries the per-run state needed to resolve linked custom-field
// options while normalizing entries. One Resolver is built per export run so
// no cached value leaks across runs.
type Resolver struct {
	Cache *openproject.OptionCache
	Fetch openproject.OptionFetcher
}

// NormalizeEntry flattens one raw time entry into a report row.
//
// The location comes from a three-tier fallback: no configured key means
// DefaultLocation; a key naming a scalar property on the entry uses that
// value (or the default when empty); otherwise the key is treated as a
// relation name and its link is resolved as a custom option, again falling
// back to the default when the resolution is empty. Only a failed option
// fetch is an error — everything else degrades to the default.
func NormalizeEntry(ctx context.Context, entry openproject.TimeEntry, resolver Resolver, locationKey string) (Row, error) {
	location, err := resolveLocation(ctx, entry, resolver, locationKey)
	if err != nil {
		return Row{}, err
	}

	entity, _ := entry.Link("entity")
	activity, _ := entry.Link("activity")

	return Row{
		Date:     entry.SpentOn,
		Hours:    timeutil.ISODurationHours(entry.Hours),
		Location: location,
		Description: composeDescription(
			openproject.ExtractID(entity.Href),
			activity.Title,
			collapseWhitespace(entry.Comment.Raw),
		),
	}, nil
}

// BuildRows drains the iterator into ordered report rows, one per entry, in
// page order then within-page order. On failure the rows normalized so far
// are returned alongside the error.
func BuildRows(ctx context.Context, entries *openproject.EntryIterator, resolver Resolver, locationKey string) ([]Row, error) {
	var rows []Row
	for entries.Next(ctx) {
		row, err := NormalizeEntry(ctx, entries.Entry(), resolver, locationKey)
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	if err := entries.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}

func resolveLocation(ctx context.Context, entry openproject.TimeEntry, resolver Resolver, locationKey string) (string, error) {
	key := strings.TrimSpace(locationKey)
	if key == "" {
		return DefaultLocation, nil
	}

	if value, ok := entry.Field(key); ok {
		if value == "" {
			return DefaultLocation, nil
		}
		return value, nil
	}

	link, ok := entry.Link(key)
	if !ok || link.Href == "" {
		return DefaultLocation, nil
	}
	value, err := openproject.ResolveOption(ctx, resolver.Cache, resolver.Fetch, link.Href)
	if err != nil {
		return "", err
	}
	if value == "" {
		return DefaultLocation, nil
	}
	return value, nil
}

// composeDescription joins assignment id, activity name, and comment with
// underscores, trimming only the separators left dangling by empty leading
// or trailing parts. An empty middle part keeps its doubled separator; the
// report consumers rely on that column shape.
func composeDescription(parts ...string) string {
	return strings.Trim(strings.Join(parts, "_"), "_")
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
