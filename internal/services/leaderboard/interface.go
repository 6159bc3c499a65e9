package leaderboard

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/wrenware/studyhall/internal/services/leaderboard Service

import (
	"context"
)

// Service defines the interface for leaderboard operations
type Service interface {
	// GetLeaderboard returns the guild's top study times for a window,
	// ordered by descending time with ties broken by user ID
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetUserTime returns one user's all-time and current-week study time
	GetUserTime(ctx context.Context, input *GetUserTimeInput) (*GetUserTimeOutput, error)

	// ResetWeek zeroes the weekly bucket for every user in the guild
	ResetWeek(ctx context.Context, input *ResetWeekInput) (*ResetWeekOutput, error)
}
