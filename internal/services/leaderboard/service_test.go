package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/wrenware/studyhall/internal/common/clock/mocks"
	"github.com/wrenware/studyhall/internal/models"
	ledgerRepo "github.com/wrenware/studyhall/internal/repositories/ledger"
	ledgerMocks "github.com/wrenware/studyhall/internal/repositories/ledger/mocks"
)

type LeaderboardServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockLedgerRepo *ledgerMocks.MockRepository
	mockClock      *clockMocks.MockClock
	service        Service
	ctx            context.Context

	// Test data
	testNow     time.Time
	testAnchor  time.Time
	testGuildID string
}

func (s *LeaderboardServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLedgerRepo = ledgerMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)

	s.ctx = context.Background()

	// A Wednesday; the containing week starts Monday 2025-04-14
	s.testNow = time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	s.testAnchor = time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"

	service, err := New(&Config{
		LedgerRepo: s.mockLedgerRepo,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *LeaderboardServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLeaderboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LeaderboardServiceTestSuite))
}

func (s *LeaderboardServiceTestSuite) entry(userID string, allTime, week int64, anchor time.Time) *models.LedgerEntry {
	return &models.LedgerEntry{
		GuildID:        s.testGuildID,
		UserID:         userID,
		AllTimeSeconds: allTime,
		WeekSeconds:    week,
		WeekAnchor:     anchor,
	}
}

func (s *LeaderboardServiceTestSuite) expectEntries(entries ...*models.LedgerEntry) {
	s.mockLedgerRepo.EXPECT().ListEntries(gomock.Any(), &ledgerRepo.ListEntriesInput{
		GuildID: s.testGuildID,
	}).Return(&ledgerRepo.ListEntriesOutput{Entries: entries}, nil)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardInvalidLimit() {
	_, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Limit:   0,
	})
	s.Require().ErrorIs(err, ErrInvalidLimit)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardInvalidWindow() {
	_, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Window:  models.LeaderboardWindow("fortnightly"),
		Limit:   10,
	})
	s.Require().ErrorIs(err, ErrInvalidWindow)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardAllTimeOrdering() {
	s.expectEntries(
		s.entry("user-a", 600, 600, s.testAnchor),
		s.entry("user-b", 3600, 0, s.testAnchor),
		s.entry("user-c", 1800, 900, s.testAnchor),
	)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Limit:   10,
	})
	s.Require().NoError(err)

	snapshot := output.Snapshot
	s.Equal(models.LeaderboardWindowAllTime, snapshot.Window)
	s.Require().Len(snapshot.Entries, 3)
	s.Equal("user-b", snapshot.Entries[0].UserID)
	s.Equal(int64(3600), snapshot.Entries[0].Seconds)
	s.Equal("user-c", snapshot.Entries[1].UserID)
	s.Equal("user-a", snapshot.Entries[2].UserID)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardTiebreakByUserID() {
	s.expectEntries(
		s.entry("user-b", 1200, 0, s.testAnchor),
		s.entry("user-a", 1200, 0, s.testAnchor),
	)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Limit:   10,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Snapshot.Entries, 2)
	s.Equal("user-a", output.Snapshot.Entries[0].UserID)
	s.Equal("user-b", output.Snapshot.Entries[1].UserID)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardLimitCapsEntries() {
	s.expectEntries(
		s.entry("user-a", 600, 0, s.testAnchor),
		s.entry("user-b", 3600, 0, s.testAnchor),
		s.entry("user-c", 1800, 0, s.testAnchor),
	)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Limit:   2,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Snapshot.Entries, 2)
	s.Equal("user-b", output.Snapshot.Entries[0].UserID)
	s.Equal("user-c", output.Snapshot.Entries[1].UserID)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardWeeklySkipsStaleAnchors() {
	// user-b's weekly bucket was filled last week and never rolled over;
	// it must not appear on this week's board
	lastWeek := s.testAnchor.AddDate(0, 0, -7)
	s.expectEntries(
		s.entry("user-a", 5000, 900, s.testAnchor),
		s.entry("user-b", 9000, 4000, lastWeek),
	)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Window:  models.LeaderboardWindowWeekly,
		Limit:   10,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Snapshot.Entries, 1)
	s.Equal("user-a", output.Snapshot.Entries[0].UserID)
	s.Equal(int64(900), output.Snapshot.Entries[0].Seconds)
}

func (s *LeaderboardServiceTestSuite) TestGetLeaderboardOmitsZeroTimes() {
	s.expectEntries(
		s.entry("user-a", 0, 0, s.testAnchor),
		s.entry("user-b", 60, 60, s.testAnchor),
	)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetLeaderboard(s.ctx, &GetLeaderboardInput{
		GuildID: s.testGuildID,
		Limit:   10,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Snapshot.Entries, 1)
	s.Equal("user-b", output.Snapshot.Entries[0].UserID)
}

func (s *LeaderboardServiceTestSuite) TestGetUserTime() {
	s.mockLedgerRepo.EXPECT().GetEntry(gomock.Any(), &ledgerRepo.GetEntryInput{
		GuildID: s.testGuildID,
		UserID:  "user-a",
	}).Return(&ledgerRepo.GetEntryOutput{
		Entry: s.entry("user-a", 7200, 1800, s.testAnchor),
	}, nil)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetUserTime(s.ctx, &GetUserTimeInput{
		GuildID: s.testGuildID,
		UserID:  "user-a",
	})
	s.Require().NoError(err)
	s.Equal(int64(7200), output.AllTimeSeconds)
	s.Equal(int64(1800), output.WeekSeconds)
}

func (s *LeaderboardServiceTestSuite) TestGetUserTimeStaleWeekReadsZero() {
	lastWeek := s.testAnchor.AddDate(0, 0, -7)
	s.mockLedgerRepo.EXPECT().GetEntry(gomock.Any(), gomock.Any()).Return(&ledgerRepo.GetEntryOutput{
		Entry: s.entry("user-a", 7200, 1800, lastWeek),
	}, nil)
	s.mockClock.EXPECT().Now().Return(s.testNow)

	output, err := s.service.GetUserTime(s.ctx, &GetUserTimeInput{
		GuildID: s.testGuildID,
		UserID:  "user-a",
	})
	s.Require().NoError(err)
	s.Equal(int64(7200), output.AllTimeSeconds)
	s.Equal(int64(0), output.WeekSeconds)
}

func (s *LeaderboardServiceTestSuite) TestResetWeek() {
	s.expectEntries(
		s.entry("user-a", 600, 600, s.testAnchor),
		s.entry("user-b", 1200, 300, s.testAnchor),
	)
	s.mockClock.EXPECT().Now().Return(s.testNow)
	s.mockLedgerRepo.EXPECT().ResetWeek(gomock.Any(), &ledgerRepo.ResetWeekInput{
		GuildID: s.testGuildID,
		At:      s.testNow,
	}).Return(nil)

	output, err := s.service.ResetWeek(s.ctx, &ResetWeekInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal(2, output.Users)
}
