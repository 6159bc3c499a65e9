package guild

import (
	"context"
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

func (s *RedisRepositoryTestSuite) TestSaveAndGetConfig() {
	config := &models.GuildConfig{
		GuildID:     "guild-1",
		StudyRoomID: "room-1",
		CategoryID:  "category-1",
		UpdatedAt:   s.testNow,
	}

	err := s.repo.SaveConfig(context.Background(), &SaveConfigInput{
		Config: config,
	})
	s.Require().NoError(err)

	output, err := s.repo.GetConfig(context.Background(), &GetConfigInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)

	s.Equal(config.GuildID, output.Config.GuildID)
	s.Equal(config.StudyRoomID, output.Config.StudyRoomID)
	s.Equal(config.CategoryID, output.Config.CategoryID)
}

func (s *RedisRepositoryTestSuite) TestSaveConfigOverwrites() {
	err := s.repo.SaveConfig(context.Background(), &SaveConfigInput{
		Config: &models.GuildConfig{
			GuildID:     "guild-1",
			StudyRoomID: "room-1",
		},
	})
	s.Require().NoError(err)

	err = s.repo.SaveConfig(context.Background(), &SaveConfigInput{
		Config: &models.GuildConfig{
			GuildID:     "guild-1",
			StudyRoomID: "room-2",
		},
	})
	s.Require().NoError(err)

	output, err := s.repo.GetConfig(context.Background(), &GetConfigInput{
		GuildID: "guild-1",
	})
	s.Require().NoError(err)
	s.Equal("room-2", output.Config.StudyRoomID)
}

func (s *RedisRepositoryTestSuite) TestGetConfigNotFound() {
	_, err := s.repo.GetConfig(context.Background(), &GetConfigInput{
		GuildID: "guild-unknown",
	})
	s.Require().ErrorIs(err, ErrConfigNotFound)
}
