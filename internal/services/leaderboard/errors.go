package leaderboard

// LeaderboardError represents errors in the leaderboard domain
type LeaderboardError string

// Error implements the error interface
func (e LeaderboardError) Error() string {
	return string(e)
}

const (
	// ErrInvalidLimit is returned when a non-positive limit is requested
	ErrInvalidLimit = LeaderboardError("limit must be positive")

	// ErrInvalidWindow is returned for an unknown leaderboard window
	ErrInvalidWindow = LeaderboardError("unknown leaderboard window")

	// ErrNilConfig is returned when the config is nil
	ErrNilConfig = LeaderboardError("config cannot be nil")

	// ErrNilLedgerRepo is returned when the ledger repository is nil
	ErrNilLedgerRepo = LeaderboardError("ledger repository cannot be nil")

	// ErrNilClock is returned when the clock is nil
	ErrNilClock = LeaderboardError("clock cannot be nil")
)
