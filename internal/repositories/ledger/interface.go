package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/wrenware/studyhall/internal/repositories/ledger Repository

import (
	"context"
)

// Repository defines the interface for study-time ledger persistence
type Repository interface {
	// Credit adds study seconds to both the all-time and current-week
	// buckets for a (guild, user) pair. If the stored week anchor is
	// older than the week containing the credit instant, the weekly
	// bucket is zeroed and the anchor advanced before crediting.
	Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error)

	// GetEntry retrieves the entry for a (guild, user) pair, returning a
	// zero-valued entry if none exists
	GetEntry(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error)

	// ListEntries retrieves all ledger entries for a guild
	ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error)

	// ResetWeek zeroes the weekly bucket for every entry in the guild and
	// advances each anchor to the week containing the reset instant
	ResetWeek(ctx context.Context, input *ResetWeekInput) error
}
