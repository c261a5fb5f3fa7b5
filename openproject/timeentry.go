package openproject

import "encoding/json"

// Link is a HAL reference to another resource. Title is filled inline for
// relations the API expands by default, such as activity and project.
type Link struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// FormattableText mirrors the API's formattable text objects ({format, raw, html}).
type FormattableText struct {
	Raw string `json:"raw"`
}

// TimeEntry is one raw record from /api/v3/time_entries. Scalar custom
// fields (text, integer, date types) appear as extra top-level properties
// like "customField7"; list-type custom fields appear as extra links. The
// raw payload is kept alongside the typed fields so both can be looked up
// by key.
type TimeEntry struct {
	ID      int64           `json:"id"`
	SpentOn string          `json:"spentOn"`
	Hours   string          `json:"hours"`
	Comment FormattableText `json:"comment"`
	Links   map[string]Link `json:"_links"`

	fields map[string]json.RawMessage
}

func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	type plain TimeEntry
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	decoded.fields = fields
	*e = TimeEntry(decoded)
	return nil
}

// Field returns a scalar top-level property rendered as a string. The second
// result reports whether the property exists on the entry at all; a present
// but null property yields ("", true).
func (e *TimeEntry) Field(key string) (string, bool) {
	raw, ok := e.fields[key]
	if !ok {
		return "", false
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, true
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String(), true
	}
	return "", true
}

// Link returns the named relation from _links, if present.
func (e *TimeEntry) Link(name string) (Link, bool) {
	link, ok := e.Links[name]
	return link, ok
}

// collectionPage is one page of a HAL collection. The next-page link is
// absent on the final page.
type collectionPage struct {
	Embedded struct {
		Elements []TimeEntry `json:"elements"`
	} `json:"_embedded"`
	Links struct {
		NextByOffset Link `json:"nextByOffset"`
	} `json:"_links"`
}

type customOption struct {
	Value string `json:"value"`
}
