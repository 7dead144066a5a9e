package models

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the date-time shapes seen in CMS date columns.
// Naive values are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeTimestamp converts a raw CMS date-time value into an
// epoch-milliseconds decimal string, the representation HubSpot date
// properties expect. Absent, empty or unparsable values map to nil,
// never to an error.
func NormalizeTimestamp(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		v := strconv.FormatInt(t.UTC().UnixMilli(), 10)
		return &v
	}
	return nil
}

// NormalizeActiveFlag maps the CMS textual active marker onto the
// single-letter flag the CRM property uses. Anything other than the
// exact literals "Yes" and "No" maps to nil.
func NormalizeActiveFlag(raw *string) *string {
	if raw == nil {
		return nil
	}
	switch *raw {
	case "Yes":
		v := "Y"
		return &v
	case "No":
		v := "N"
		return &v
	default:
		return nil
	}
}

// DayStartEpochMillis truncates an instant to midnight of its UTC
// calendar day and returns epoch-milliseconds. The cms_last_synced
// stamp is deterministic per sync day, not per second.
func DayStartEpochMillis(now time.Time) int64 {
	u := now.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.UnixMilli()
}
