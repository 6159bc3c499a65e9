package voice

//go:generate mockgen -package=mocks -destination=mocks/mock_adapter.go github.com/wrenware/studyhall/internal/platform/voice Adapter

import (
	"context"
)

// Adapter is the voice-platform boundary the core talks to. The core
// computes its decisions first and issues these calls afterwards;
// failures are reported, not retried, because the next policy
// evaluation recomputes the full decision set anyway.
type Adapter interface {
	// EnsureRoom creates or restores the shared study voice room
	EnsureRoom(ctx context.Context, input *EnsureRoomInput) (*EnsureRoomOutput, error)

	// ListOccupants returns the user IDs currently in a voice room
	ListOccupants(ctx context.Context, input *ListOccupantsInput) (*ListOccupantsOutput, error)

	// SetMuted applies or removes the server mute flag for one member
	SetMuted(ctx context.Context, input *SetMutedInput) error

	// MoveMember moves a member into a voice room
	MoveMember(ctx context.Context, input *MoveMemberInput) error
}
