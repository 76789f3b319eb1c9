package models

import "time"

// Layouts the API and the datetime-local input produce.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// FormatDateTime renders a schedule timestamp as dd/mm/yyyy hh:mm in loc. Zoned timestamps are
// converted; zone-less ones are taken as already local. Unparseable input is returned unchanged.
func FormatDateTime(raw string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}
		return t.In(loc).Format("02/01/2006 15:04")
	}
	return raw
}
