package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetSessionStartedMessage returns an announcement for a session start
	GetSessionStartedMessage(ctx context.Context, input *GetSessionStartedMessageInput) (*GetSessionStartedMessageOutput, error)

	// GetSessionEndedMessage returns an announcement for a session end
	GetSessionEndedMessage(ctx context.Context, input *GetSessionEndedMessageInput) (*GetSessionEndedMessageOutput, error)

	// GetPhaseMessage returns an announcement for a pomodoro phase change
	GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
