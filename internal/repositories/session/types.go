package session

import "github.com/wrenware/studyhall/internal/models"

// SaveSessionInput contains parameters for saving a session record
type SaveSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session record
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the retrieved session record
type GetSessionOutput struct {
	Session *models.Session
}

// ListSessionsInput contains parameters for listing a guild's sessions
type ListSessionsInput struct {
	GuildID string

	// Limit caps the number of records returned; 0 means no cap
	Limit int
}

// ListSessionsOutput contains the guild's session records
type ListSessionsOutput struct {
	Sessions []*models.Session
}
