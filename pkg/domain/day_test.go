package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOf(t *testing.T) {
	// 2024-01-01 23:30 UTC is still Jan 1 regardless of local zone
	ts := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC).Unix()
	assert.Equal(t, "2024-01-01", DayOf(ts))
	assert.Equal(t, "2024-01-02", DayOf(ts+1800))

	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, "2024-01-01", DayOfTime(time.Date(2024, 1, 2, 4, 0, 0, 0, loc)))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024-2-29", "2024/02/29", "2023-02-29", "yesterday"} {
		_, err := ParseDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(86400), end-start)
	assert.Equal(t, "2024-01-01", DayOf(start))
	assert.Equal(t, "2024-01-01", DayOf(end-1))
	assert.Equal(t, "2024-01-02", DayOf(end))
}

func TestDaysBetween(t *testing.T) {
	tbl := []struct {
		start, end string
		want       []string
	}{
		{"2024-01-01", "2024-01-01", []string{"2024-01-01"}},
		{"2024-02-27", "2024-03-01", []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}},
		{"2024-12-31", "2025-01-01", []string{"2024-12-31", "2025-01-01"}},
		{"2024-01-05", "2024-01-01", []string{}},
	}
	for _, tt := range tbl {
		t.Run(tt.start+"_"+tt.end, func(t *testing.T) {
			days, err := DaysBetween(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, days)
		})
	}

	_, err := DaysBetween("bad", "2024-01-01")
	assert.Error(t, err)
}

func TestTimeRange(t *testing.T) {
	r, err := ParseTimeRange("")
	require.NoError(t, err)
	assert.Equal(t, Range30d, r)

	r, err = ParseTimeRange("7d")
	require.NoError(t, err)
	assert.Equal(t, 7, r.Days())

	_, err = ParseTimeRange("14d")
	assert.Error(t, err)

	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	start, end := Range7d.Window(now)
	assert.Equal(t, "2024-03-04", start)
	assert.Equal(t, "2024-03-10", end)
	days, err := DaysBetween(start, end)
	require.NoError(t, err)
	assert.Len(t, days, 7)

	start, _ = Range90d.Window(now)
	days, err = DaysBetween(start, end)
	require.NoError(t, err)
	assert.Len(t, days, 90)
}

func TestNewSample(t *testing.T) {
	item := ScoredItem{ID: "a", Content: strings.Repeat("й", 250), Score: 3}
	s := NewSample(item)
	assert.Equal(t, strings.Repeat("й", 200)+"...", s.Content)
	assert.Equal(t, 3, s.Score)

	short := NewSample(ScoredItem{Content: "short"})
	assert.Equal(t, "short", short.Content)
}

func TestRawItem_Text(t *testing.T) {
	assert.Equal(t, "title\n\nbody", RawItem{Title: "title", Content: "body"}.Text())
	assert.Equal(t, "body", RawItem{Content: "body"}.Text())
	assert.Equal(t, "title", RawItem{Title: "title"}.Text())
}
