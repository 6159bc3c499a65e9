package session

import (
	"time"

	"github.com/wrenware/studyhall/internal/common/clock"
	"github.com/wrenware/studyhall/internal/common/timer"
	"github.com/wrenware/studyhall/internal/common/uuid"
	"github.com/wrenware/studyhall/internal/models"
	"github.com/wrenware/studyhall/internal/platform/voice"
	guildRepo "github.com/wrenware/studyhall/internal/repositories/guild"
	ledgerRepo "github.com/wrenware/studyhall/internal/repositories/ledger"
	sessionRepo "github.com/wrenware/studyhall/internal/repositories/session"
)

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	GuildRepo   guildRepo.Repository
	SessionRepo sessionRepo.Repository
	LedgerRepo  ledgerRepo.Repository

	// Voice platform adapter
	Voice voice.Adapter

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Scheduler     timer.Scheduler

	// Notifier receives lifecycle notifications; optional
	Notifier Notifier
}

// Notifier receives lifecycle notifications for the presentation layer.
// The service holds no knowledge of how announcements are delivered.
type Notifier interface {
	// SessionStarted is called after a session enters the active state
	SessionStarted(note *SessionStartedNote)

	// SessionEnded is called after a session reaches its terminal state
	SessionEnded(note *SessionEndedNote)

	// PomodoroPhaseChanged is called on every pomodoro phase transition,
	// including entering the first focus phase and stopping
	PomodoroPhaseChanged(note *PomodoroPhaseNote)
}

// SessionStartedNote describes a session-started notification
type SessionStartedNote struct {
	GuildID   string
	SessionID string
	RoomID    string

	// ChannelID is the text channel the start command came from
	ChannelID string

	// StartedBy is the user who issued the start command
	StartedBy string
}

// SessionEndedNote describes a session-ended notification
type SessionEndedNote struct {
	GuildID   string
	SessionID string
	ChannelID string

	// Duration is the full session length
	Duration time.Duration

	// Participants is how many members were credited
	Participants int
}

// PomodoroPhaseNote describes a pomodoro phase transition
type PomodoroPhaseNote struct {
	GuildID   string
	ChannelID string

	// Phase is the phase just entered
	Phase models.PomodoroPhase

	// CycleIndex counts completed focus phases
	CycleIndex int

	// Duration is the length of the entered phase, zero for stopped
	Duration time.Duration
}

// SetupRoomInput contains parameters for setting up the study room
type SetupRoomInput struct {
	GuildID string
}

// SetupRoomOutput contains the configured study room
type SetupRoomOutput struct {
	RoomID string
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	GuildID string

	// ChannelID is the text channel announcements for this session go to
	ChannelID string

	// StartedBy is the user who issued the start command
	StartedBy string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	SessionID string
	RoomID    string
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	GuildID string
	UserID  string

	// MoveToRoom also moves the member into the study voice room
	MoveToRoom bool
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	RoomID string

	// AlreadyJoined indicates the user was already a participant; their
	// original join time is kept
	AlreadyJoined bool
}

// EndSessionInput contains parameters for ending a session
type EndSessionInput struct {
	GuildID string
}

// EndSessionOutput contains the result of ending a session
type EndSessionOutput struct {
	SessionID string

	// Duration is the full session length
	Duration time.Duration

	// Participants is how many members were credited
	Participants int
}

// StartPomodoroInput contains parameters for starting pomodoro cycles
type StartPomodoroInput struct {
	GuildID string

	// ChannelID is the text channel phase announcements go to
	ChannelID string

	// FocusDuration is the focus phase length; default when zero
	FocusDuration time.Duration

	// BreakDuration is the break phase length; default when zero
	BreakDuration time.Duration
}

// StartPomodoroOutput contains the started cycle configuration
type StartPomodoroOutput struct {
	FocusDuration time.Duration
	BreakDuration time.Duration
}

// StopPomodoroInput contains parameters for stopping pomodoro cycles
type StopPomodoroInput struct {
	GuildID string
}

// StopPomodoroOutput contains the result of stopping pomodoro cycles
type StopPomodoroOutput struct {
	// Stopped is false if no pomodoro was running
	Stopped bool
}

// GetHistoryInput contains parameters for listing recent sessions
type GetHistoryInput struct {
	GuildID string

	// Limit caps the number of records returned; 0 means no cap
	Limit int
}

// GetHistoryOutput contains the guild's recent sessions, newest first
type GetHistoryOutput struct {
	Sessions []*models.Session
}

// HandleRoomEventInput describes a study room occupancy change
type HandleRoomEventInput struct {
	GuildID string
	UserID  string

	// RoomID is the voice channel the event happened in
	RoomID string

	// Joined is true for a join, false for a leave
	Joined bool
}
