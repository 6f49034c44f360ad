package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Форматы, в которых бэкенд отдает даты (jsonify шлет RFC1123, MySQL - "YYYY-MM-DD HH:MM:SS").
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp keeps the raw upstream value when it cannot be parsed.
type Timestamp struct {
	Time time.Time
	Raw  string
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts Timestamp) IsZero() bool {
	return ts.Time.IsZero() && ts.Raw == ""
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	if data[0] != '"' {
		*ts = epochTimestamp(string(data))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = ParseTimestamp(s)
	return nil
}

// epochTimestamp reads a JSON number as Unix seconds, or milliseconds when it
// is too large for seconds. Anything else is kept raw.
func epochTimestamp(raw string) Timestamp {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return Timestamp{Raw: raw}
	}
	if f >= 1e12 {
		return Timestamp{Time: time.UnixMilli(int64(f)).UTC()}
	}
	sec, frac := math.Modf(f)
	return Timestamp{Time: time.Unix(int64(sec), int64(frac*1e9)).UTC()}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	if ts.Time.IsZero() {
		return json.Marshal(ts.Raw)
	}
	return json.Marshal(ts.Time.Format(time.RFC3339))
}

// ParseTimestamp tries the known layouts in order.
func ParseTimestamp(s string) Timestamp {
	if s == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}
		}
	}
	return Timestamp{Raw: s}
}

// Display renders the value as the listing shows it ("Jan 2, 2006"), "—" when missing.
func (ts Timestamp) Display() string {
	switch {
	case !ts.Time.IsZero():
		return ts.Time.Format("Jan 2, 2006")
	case ts.Raw != "":
		return ts.Raw
	default:
		return "—"
	}
}
