package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// tableLayout matches the dashboard table, e.g. "Feb 20, 2026 6:30 PM".
const tableLayout = "Jan 02, 2006 3:04 PM"

// stringLayouts are tried in order when a timestamp arrives as text.
var stringLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CoerceTimestamp normalizes the wire representations an event timestamp
// can show up as: a native time.Time, a Mongo DateTime, or a string.
// Anything else (including nil) reports false instead of panicking.
func CoerceTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		for _, layout := range stringLayouts {
			if parsed, err := time.ParseInLocation(layout, t, time.Local); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// FormatForTable renders an instant for the event list table.
func FormatForTable(t time.Time) string {
	return t.Format(tableLayout)
}

// CombineDateTime joins a "YYYY-MM-DD" date and "HH:mm" time into one
// local-time instant, the way the creation form submits them.
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", dateStr+"T"+timeStr, time.Local)
}
