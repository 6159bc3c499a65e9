package leaderboard

import (
	"github.com/wrenware/studyhall/internal/common/clock"
	"github.com/wrenware/studyhall/internal/models"
	ledgerRepo "github.com/wrenware/studyhall/internal/repositories/ledger"
)

// Config holds configuration for the leaderboard service
type Config struct {
	LedgerRepo ledgerRepo.Repository
	Clock      clock.Clock
}

// GetLeaderboardInput contains parameters for building a leaderboard
type GetLeaderboardInput struct {
	GuildID string

	// Window selects the ranking window; all-time when empty
	Window models.LeaderboardWindow

	// Limit caps the number of returned entries, must be positive
	Limit int
}

// GetLeaderboardOutput contains the ranked leaderboard
type GetLeaderboardOutput struct {
	Snapshot *models.LeaderboardSnapshot
}

// GetUserTimeInput contains parameters for a single user's totals
type GetUserTimeInput struct {
	GuildID string
	UserID  string
}

// GetUserTimeOutput contains a user's study time totals
type GetUserTimeOutput struct {
	AllTimeSeconds int64

	// WeekSeconds is the time accrued in the current week; a stale stored
	// week counts as zero
	WeekSeconds int64
}

// ResetWeekInput contains parameters for resetting weekly totals
type ResetWeekInput struct {
	GuildID string
}

// ResetWeekOutput contains the result of a weekly reset
type ResetWeekOutput struct {
	// Users is how many ledger entries were reset
	Users int
}
