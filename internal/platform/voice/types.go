package voice

// EnsureRoomInput contains parameters for creating or restoring the room
type EnsureRoomInput struct {
	GuildID string

	// RoomID is the previously configured room, empty on first setup.
	// If the channel still exists it is reused.
	RoomID string

	// CategoryID is the previously configured channel category, if any
	CategoryID string
}

// EnsureRoomOutput contains the resulting room identifiers
type EnsureRoomOutput struct {
	RoomID     string
	CategoryID string
}

// ListOccupantsInput contains parameters for listing room occupants
type ListOccupantsInput struct {
	GuildID string
	RoomID  string
}

// ListOccupantsOutput contains the user IDs currently in the room
type ListOccupantsOutput struct {
	UserIDs []string
}

// SetMutedInput contains parameters for changing a member's mute flag
type SetMutedInput struct {
	GuildID string
	UserID  string
	Muted   bool
}

// MoveMemberInput contains parameters for moving a member into a room
type MoveMemberInput struct {
	GuildID string
	UserID  string
	RoomID  string
}
