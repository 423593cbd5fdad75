package domain

import "time"

// Setting represents a key-value runtime setting
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// known setting keys
const (
	SettingLastPoll     = "last_poll_at"
	SettingLastBackfill = "last_backfill_at"
	SettingLastUpdated  = "aggregates_updated_at"
)
