package ledger

import (
	"time"

	"github.com/wrenware/studyhall/internal/models"
)

// CreditInput contains parameters for crediting study time
type CreditInput struct {
	// GuildID is the guild the time was studied in
	GuildID string

	// UserID is the user being credited
	UserID string

	// Seconds is the amount of study time to add, must be non-negative
	Seconds int64

	// At is the instant the credit applies at, used for week anchoring
	At time.Time
}

// CreditOutput contains the entry state after the credit was applied
type CreditOutput struct {
	Entry *models.LedgerEntry
}

// GetEntryInput contains parameters for retrieving a ledger entry
type GetEntryInput struct {
	GuildID string
	UserID  string
}

// GetEntryOutput contains the retrieved ledger entry
type GetEntryOutput struct {
	Entry *models.LedgerEntry
}

// ListEntriesInput contains parameters for listing a guild's entries
type ListEntriesInput struct {
	GuildID string
}

// ListEntriesOutput contains all ledger entries for a guild
type ListEntriesOutput struct {
	Entries []*models.LedgerEntry
}

// ResetWeekInput contains parameters for resetting a guild's weekly buckets
type ResetWeekInput struct {
	GuildID string

	// At is the instant the reset applies at, used for week anchoring
	At time.Time
}
