package session

import "context"

// Service defines the interface for study session operations
type Service interface {
	// SetupRoom creates or restores the guild's shared study voice room
	// and stores it in the guild configuration
	SetupRoom(ctx context.Context, input *SetupRoomInput) (*SetupRoomOutput, error)

	// StartSession starts a study session in the guild's study room
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// JoinSession records a user as a session participant
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// EndSession ends the active session and flushes participant study
	// time to the ledger
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// StartPomodoro starts focus/break cycles inside the active session
	StartPomodoro(ctx context.Context, input *StartPomodoroInput) (*StartPomodoroOutput, error)

	// StopPomodoro stops the running pomodoro cycle, if any
	StopPomodoro(ctx context.Context, input *StopPomodoroInput) (*StopPomodoroOutput, error)

	// GetHistory returns the guild's most recent sessions, newest first
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// HandleRoomEvent processes a member joining or leaving the study room
	HandleRoomEvent(ctx context.Context, input *HandleRoomEventInput) error
}
