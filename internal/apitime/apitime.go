// Package apitime handles the naive UTC timestamps written by the API.
package apitime

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is the short date-and-time form used in threads.
const DisplayLayout = "Jan 2, 2006, 03:04 PM"

// DateLayout is the date-only display form.
const DateLayout = "Jan 2, 2006"

// Timestamp is a server timestamp. The API writes naive timestamps that are
// in UTC; the raw text is kept so an unparseable value still round-trips.
type Timestamp struct {
	Raw string
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Time parses the timestamp as UTC. A value that already carries a zone is
// honoured as-is.
func (ts Timestamp) Time() (time.Time, bool) {
	raw := strings.TrimSpace(ts.Raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders the timestamp in loc using DisplayLayout, or
// "Invalid Date" when it cannot be parsed. A nil loc means time.Local.
func (ts Timestamp) Format(loc *time.Location) string {
	return ts.format(loc, DisplayLayout)
}

// FormatDate is Format with DateLayout.
func (ts Timestamp) FormatDate(loc *time.Location) string {
	return ts.format(loc, DateLayout)
}

func (ts Timestamp) format(loc *time.Location, layout string) string {
	t, ok := ts.Time()
	if !ok {
		return "Invalid Date"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}

// MarshalJSON writes the raw server value.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Raw)
}

// UnmarshalJSON accepts a string or null. Parsing is deferred to Time so a
// malformed value never fails the surrounding decode.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		ts.Raw = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	ts.Raw = s
	return nil
}
