package messaging

import (
	"time"

	"github.com/wrenware/studyhall/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
}

// GetSessionStartedMessageInput contains parameters for a session start message
type GetSessionStartedMessageInput struct {
	// StarterName is the display name of whoever started the session
	StarterName string

	// RoomMention is the rendered mention of the study voice room
	RoomMention string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetSessionStartedMessageOutput contains the generated message
type GetSessionStartedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetSessionEndedMessageInput contains parameters for a session end message
type GetSessionEndedMessageInput struct {
	// Duration is how long the session ran
	Duration time.Duration

	// Participants is how many members were credited
	Participants int

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetSessionEndedMessageOutput contains the generated message
type GetSessionEndedMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetPhaseMessageInput contains parameters for a phase change message
type GetPhaseMessageInput struct {
	// Phase is the pomodoro phase just entered
	Phase models.PomodoroPhase

	// CycleIndex counts completed focus phases
	CycleIndex int

	// Duration is the length of the entered phase
	Duration time.Duration

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetPhaseMessageOutput contains the generated message
type GetPhaseMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	// Err is the underlying error being presented
	Err error
}

// GetErrorMessageOutput contains the generated message
type GetErrorMessageOutput struct {
	Message string
}
