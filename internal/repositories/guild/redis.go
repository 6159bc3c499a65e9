package guild

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wrenware/studyhall/internal/models"
)

const (
	// Key prefix for Redis
	configKeyPrefix = "guild_config:"
)

// ErrConfigNotFound is returned when a guild has no stored configuration
var ErrConfigNotFound = errors.New("guild configuration not found")

// Config holds configuration for the Redis guild repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed guild repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveConfig persists a guild configuration to Redis
func (r *redisRepository) SaveConfig(ctx context.Context, input *SaveConfigInput) error {
	if input == nil || input.Config == nil {
		return errors.New("input and config cannot be nil")
	}

	if input.Config.GuildID == "" {
		return errors.New("guild ID cannot be empty")
	}

	configJSON, err := json.Marshal(input.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal guild config: %w", err)
	}

	configKey := fmt.Sprintf("%s%s", configKeyPrefix, input.Config.GuildID)
	if err := r.client.Set(ctx, configKey, configJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save guild config: %w", err)
	}

	return nil
}

// GetConfig retrieves a guild configuration from Redis
func (r *redisRepository) GetConfig(ctx context.Context, input *GetConfigInput) (*GetConfigOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	configKey := fmt.Sprintf("%s%s", configKeyPrefix, input.GuildID)
	configJSON, err := r.client.Get(ctx, configKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	var config models.GuildConfig
	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guild config: %w", err)
	}

	return &GetConfigOutput{Config: &config}, nil
}
