package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/wrenware/studyhall/internal/models"
)

// medals for the top three leaderboard places
var medals = []string{"🥇", "🥈", "🥉"}

// fmtSeconds renders a study-time total as "2h 05m" / "25m" / "40s"
func fmtSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// fmtDuration renders a duration with fmtSeconds
func fmtDuration(d time.Duration) string {
	return fmtSeconds(int64(d.Seconds()))
}

// windowTitle maps a leaderboard window to its display heading
func windowTitle(window models.LeaderboardWindow) string {
	if window == models.LeaderboardWindowWeekly {
		return "This Week's Study Leaderboard"
	}
	return "All-Time Study Leaderboard"
}

// renderLeaderboard builds the leaderboard message body
func renderLeaderboard(snapshot *models.LeaderboardSnapshot) string {
	if len(snapshot.Entries) == 0 {
		return "Nobody has logged study time yet. Be the first!"
	}

	var sb strings.Builder
	for place, entry := range snapshot.Entries {
		marker := fmt.Sprintf("%d.", place+1)
		if place < len(medals) {
			marker = medals[place]
		}
		sb.WriteString(fmt.Sprintf("%s <@%s> — %s\n", marker, entry.UserID, fmtSeconds(entry.Seconds)))
	}

	return sb.String()
}

// renderHistory builds the session history message body, most recent first
func renderHistory(sessions []*models.Session) string {
	if len(sessions) == 0 {
		return "No study sessions on record yet."
	}

	var sb strings.Builder
	for _, sess := range sessions {
		when := sess.StartedAt.UTC().Format("Jan 2 15:04 MST")
		if sess.Status == models.SessionStatusActive {
			sb.WriteString(fmt.Sprintf("• %s — in progress, %d studying\n", when, len(sess.Participants)))
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s — %s, %d participants\n", when, fmtSeconds(sess.DurationSeconds), len(sess.Participants)))
	}

	return sb.String()
}
