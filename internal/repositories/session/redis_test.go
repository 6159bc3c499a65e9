package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/wrenware/studyhall/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := &models.Session{
		ID:        "test-session-id",
		GuildID:   "guild-1",
		RoomID:    "room-1",
		Status:    models.SessionStatusActive,
		StartedAt: s.testNow,
		Participants: map[string]time.Time{
			"user-a": s.testNow,
		},
	}

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	output, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)

	s.Equal(session.ID, output.Session.ID)
	s.Equal(session.GuildID, output.Session.GuildID)
	s.Equal(models.SessionStatusActive, output.Session.Status)
	s.Len(output.Session.Participants, 1)
}

func (s *RedisRepositoryTestSuite) TestSaveSessionUpdatesRecord() {
	session := &models.Session{
		ID:        "test-session-id",
		GuildID:   "guild-1",
		Status:    models.SessionStatusActive,
		StartedAt: s.testNow,
	}

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session})
	s.Require().NoError(err)

	session.Status = models.SessionStatusEnded
	session.EndedAt = s.testNow.Add(30 * time.Minute)
	session.DurationSeconds = 1800

	err = s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session})
	s.Require().NoError(err)

	output, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusEnded, output.Session.Status)
	s.Equal(int64(1800), output.Session.DurationSeconds)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "missing",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestListSessionsMostRecentFirst() {
	for i := 0; i < 3; i++ {
		err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
			Session: &models.Session{
				ID:        fmt.Sprintf("session-%d", i),
				GuildID:   "guild-1",
				Status:    models.SessionStatusEnded,
				StartedAt: s.testNow.Add(time.Duration(i) * time.Hour),
			},
		})
		s.Require().NoError(err)
	}

	output, err := s.repo.ListSessions(context.Background(), &ListSessionsInput{
		GuildID: "guild-1",
		Limit:   2,
	})
	s.Require().NoError(err)

	s.Require().Len(output.Sessions, 2)
	s.Equal("session-2", output.Sessions[0].ID)
	s.Equal("session-1", output.Sessions[1].ID)
}
