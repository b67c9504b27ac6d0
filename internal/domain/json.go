package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk form of due dates: local time, no zone.
const TimestampLayout = "2006-01-02T15:04:05.000000"

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// ParseTimestamp accepts the on-disk layout, the same without fraction, or RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// Timestamp drops what the on-disk layout cannot hold: sub-microsecond
// precision and the monotonic clock reading.
func Timestamp(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

// FormatTimestamp renders t in the on-disk layout.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

type cardJSON struct {
	Front       string `json:"front"`
	Back        string `json:"back"`
	Interval    int    `json:"interval"`
	Due         string `json:"due"`
	Repetitions int    `json:"repetitions"`
	Ease        int    `json:"ease"`
	LastRating  *int   `json:"last_rating"`
}

// MarshalJSON implements json.Marshaler.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		Front:       c.Front,
		Back:        c.Back,
		Interval:    c.Interval,
		Due:         FormatTimestamp(c.Due),
		Repetitions: c.Repetitions,
		Ease:        c.Ease,
		LastRating:  c.LastRating,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Card) UnmarshalJSON(data []byte) error {
	raw := cardJSON{Ease: InitialEase}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	due, err := ParseTimestamp(raw.Due)
	if err != nil {
		return fmt.Errorf("card %q: %w", raw.Front, err)
	}
	*c = Card{
		Front:       raw.Front,
		Back:        raw.Back,
		Interval:    raw.Interval,
		Due:         due,
		Repetitions: raw.Repetitions,
		Ease:        raw.Ease,
		LastRating:  raw.LastRating,
	}
	c.NormalizeRatings()
	return nil
}
