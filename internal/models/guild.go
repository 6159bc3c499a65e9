package models

import (
	"time"
)

// GuildConfig holds the per-guild study room configuration
type GuildConfig struct {
	// GuildID is the Discord server/guild this configuration belongs to
	GuildID string

	// StudyRoomID is the designated study voice channel, empty until setup
	StudyRoomID string

	// CategoryID is the channel category the study room lives under
	CategoryID string

	// UpdatedAt is when the configuration was last written
	UpdatedAt time.Time
}
