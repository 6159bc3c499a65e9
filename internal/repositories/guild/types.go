package guild

import "github.com/wrenware/studyhall/internal/models"

// SaveConfigInput contains parameters for saving a guild configuration
type SaveConfigInput struct {
	Config *models.GuildConfig
}

// GetConfigInput contains parameters for retrieving a guild configuration
type GetConfigInput struct {
	GuildID string
}

// GetConfigOutput contains the retrieved guild configuration
type GetConfigOutput struct {
	Config *models.GuildConfig
}
