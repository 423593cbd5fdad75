package domain

import (
	"fmt"
	"time"
)

// DayLayout is the calendar day key format
const DayLayout = "2006-01-02"

// DayOf buckets a unix timestamp (seconds) into its UTC calendar day key.
// All day keys in the system are produced here.
func DayOf(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(DayLayout)
}

// DayOfTime returns the UTC calendar day key of t
func DayOfTime(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD key into midnight UTC
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// DayBounds returns the unix second range [start, end) covered by a day key
func DayBounds(day string) (start, end int64, err error) {
	t, err := ParseDay(day)
	if err != nil {
		return 0, 0, err
	}
	return t.Unix(), t.AddDate(0, 0, 1).Unix(), nil
}

// DaysBetween enumerates day keys in [start, end] inclusive.
// Returns an empty slice when end is before start.
func DaysBetween(start, end string) ([]string, error) {
	from, err := ParseDay(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDay(end)
	if err != nil {
		return nil, err
	}
	days := []string{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayLayout))
	}
	return days, nil
}

// TimeRange is one of the supported dashboard windows
type TimeRange string

// supported ranges
const (
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
	Range90d TimeRange = "90d"
)

// DefaultRange is used by every endpoint when no range is given
const DefaultRange = Range30d

// ParseTimeRange validates a range value, empty string maps to DefaultRange
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case "":
		return DefaultRange, nil
	case Range7d, Range30d, Range90d:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("invalid time range %q, expected one of 7d, 30d, 90d", s)
	}
}

// Days returns the window length in days
func (r TimeRange) Days() int {
	switch r {
	case Range7d:
		return 7
	case Range90d:
		return 90
	default:
		return 30
	}
}

// Window returns the inclusive [start, end] day keys ending on the UTC day of now
func (r TimeRange) Window(now time.Time) (start, end string) {
	today := now.UTC()
	return today.AddDate(0, 0, -(r.Days() - 1)).Format(DayLayout), today.Format(DayLayout)
}
