package guild

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/wrenware/studyhall/internal/repositories/guild Repository

import (
	"context"
)

// Repository defines the interface for guild configuration persistence
type Repository interface {
	// SaveConfig persists a guild's study room configuration
	SaveConfig(ctx context.Context, input *SaveConfigInput) error

	// GetConfig retrieves a guild's configuration
	GetConfig(ctx context.Context, input *GetConfigInput) (*GetConfigOutput, error)
}
