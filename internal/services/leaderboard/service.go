package leaderboard

import (
	"context"
	"errors"
	"sort"

	"github.com/wrenware/studyhall/internal/common/clock"
	"github.com/wrenware/studyhall/internal/models"
	ledgerRepo "github.com/wrenware/studyhall/internal/repositories/ledger"
)

// service implements the Service interface
type service struct {
	ledgerRepo ledgerRepo.Repository
	clock      clock.Clock
}

// New creates a new leaderboard service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		ledgerRepo: cfg.LedgerRepo,
		clock:      cfg.Clock,
	}, nil
}

// GetLeaderboard builds the ranked study-time leaderboard for a guild
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	if input.Limit <= 0 {
		return nil, ErrInvalidLimit
	}

	window := input.Window
	if window == "" {
		window = models.LeaderboardWindowAllTime
	}
	if window != models.LeaderboardWindowAllTime && window != models.LeaderboardWindowWeekly {
		return nil, ErrInvalidWindow
	}

	listOutput, err := s.ledgerRepo.ListEntries(ctx, &ledgerRepo.ListEntriesInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	anchor := models.WeekStart(s.clock.Now())
	entries := make([]*models.LeaderboardEntry, 0, len(listOutput.Entries))
	for _, entry := range listOutput.Entries {
		seconds := entry.AllTimeSeconds
		if window == models.LeaderboardWindowWeekly {
			seconds = entry.WeekSeconds

			// An anchor older than the current week means the weekly
			// bucket holds a previous week's time
			if entry.WeekAnchor.Before(anchor) {
				seconds = 0
			}
		}

		if seconds <= 0 {
			continue
		}

		entries = append(entries, &models.LeaderboardEntry{
			UserID:  entry.UserID,
			Seconds: seconds,
		})
	}

	// Rank by time, with user ID as a stable tiebreak
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Seconds != entries[j].Seconds {
			return entries[i].Seconds > entries[j].Seconds
		}
		return entries[i].UserID < entries[j].UserID
	})

	if len(entries) > input.Limit {
		entries = entries[:input.Limit]
	}

	return &GetLeaderboardOutput{
		Snapshot: &models.LeaderboardSnapshot{
			GuildID: input.GuildID,
			Window:  window,
			Entries: entries,
		},
	}, nil
}

// GetUserTime returns one user's study totals
func (s *service) GetUserTime(ctx context.Context, input *GetUserTimeInput) (*GetUserTimeOutput, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return nil, errors.New("input, guild ID and user ID cannot be empty")
	}

	entryOutput, err := s.ledgerRepo.GetEntry(ctx, &ledgerRepo.GetEntryInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	})
	if err != nil {
		return nil, err
	}

	entry := entryOutput.Entry
	weekSeconds := entry.WeekSeconds
	if entry.WeekAnchor.Before(models.WeekStart(s.clock.Now())) {
		weekSeconds = 0
	}

	return &GetUserTimeOutput{
		AllTimeSeconds: entry.AllTimeSeconds,
		WeekSeconds:    weekSeconds,
	}, nil
}

// ResetWeek zeroes the weekly bucket for everyone in the guild
func (s *service) ResetWeek(ctx context.Context, input *ResetWeekInput) (*ResetWeekOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	listOutput, err := s.ledgerRepo.ListEntries(ctx, &ledgerRepo.ListEntriesInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	err = s.ledgerRepo.ResetWeek(ctx, &ledgerRepo.ResetWeekInput{
		GuildID: input.GuildID,
		At:      s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &ResetWeekOutput{Users: len(listOutput.Entries)}, nil
}
