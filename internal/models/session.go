package models

import (
	"time"
)

// SessionStatus represents the current state of a study session
type SessionStatus string

const (
	// SessionStatusActive indicates the session is running and mute
	// enforcement is engaged
	SessionStatusActive SessionStatus = "active"

	// SessionStatusEnded indicates the session has finished and its
	// participant time has been flushed to the ledger
	SessionStatusEnded SessionStatus = "ended"
)

// Session represents one bounded study period in a guild
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// GuildID is the Discord server/guild this session belongs to
	GuildID string

	// RoomID is the study voice channel the session runs in
	RoomID string

	// AnnounceChannelID is the text channel lifecycle announcements go to
	AnnounceChannelID string

	// Status is the current state of the session
	Status SessionStatus

	// StartedAt is when the session started
	StartedAt time.Time

	// EndedAt is when the session ended, zero while active
	EndedAt time.Time

	// DurationSeconds is the session length, set when the session ends
	DurationSeconds int64

	// Participants maps each participant's user ID to their join time.
	// A participant only accrues study time from their join instant.
	Participants map[string]time.Time

	// Pomodoro is the embedded cycle state, nil unless pomodoro mode is on
	Pomodoro *PomodoroCycle
}

// Active reports whether the session is in a non-terminal state
func (s *Session) Active() bool {
	return s != nil && s.Status == SessionStatusActive
}
