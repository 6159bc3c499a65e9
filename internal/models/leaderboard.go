package models

// LeaderboardWindow selects which ledger bucket a ranking reads
type LeaderboardWindow string

const (
	// LeaderboardWindowAllTime ranks by total accumulated seconds
	LeaderboardWindowAllTime LeaderboardWindow = "all_time"

	// LeaderboardWindowWeekly ranks by the current week's seconds
	LeaderboardWindowWeekly LeaderboardWindow = "weekly"
)

// LeaderboardEntry is one ranked row in a leaderboard snapshot
type LeaderboardEntry struct {
	// UserID is the Discord user ID of the ranked member
	UserID string

	// Seconds is the study time in the requested window
	Seconds int64
}

// LeaderboardSnapshot is a derived, ordered ranking for one guild and
// window. It is computed on demand and never stored.
type LeaderboardSnapshot struct {
	// GuildID is the guild the snapshot covers
	GuildID string

	// Window is the bucket the snapshot ranks by
	Window LeaderboardWindow

	// Entries are the ranked rows, highest seconds first
	Entries []*LeaderboardEntry
}
