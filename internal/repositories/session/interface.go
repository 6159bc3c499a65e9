package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/wrenware/studyhall/internal/repositories/session Repository

import (
	"context"
)

// Repository defines the interface for session history persistence
type Repository interface {
	// SaveSession persists a session record, overwriting any previous
	// record with the same ID
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session record by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListSessions retrieves a guild's session records, most recent first
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
