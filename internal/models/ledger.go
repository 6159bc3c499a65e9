package models

import (
	"time"
)

// LedgerEntry accumulates study seconds for one (guild, user) pair
type LedgerEntry struct {
	// GuildID is the Discord server/guild the entry belongs to
	GuildID string

	// UserID is the Discord user the entry belongs to
	UserID string

	// AllTimeSeconds is the total study time ever credited. It never
	// decreases.
	AllTimeSeconds int64

	// WeekSeconds is the study time credited in the week starting at
	// WeekAnchor
	WeekSeconds int64

	// WeekAnchor is the UTC Monday 00:00 the weekly counter covers
	WeekAnchor time.Time

	// UpdatedAt is when the entry was last credited or reset
	UpdatedAt time.Time
}

// WeekStart returns the most recent UTC Monday 00:00:00 at or before t.
// Both the lazy rollover on credit and the explicit weekly reset use this
// rule, so they always agree on the current anchor.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
