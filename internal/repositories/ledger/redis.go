package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wrenware/studyhall/internal/models"
)

const (
	// Key prefixes for Redis
	entryKeyPrefix      = "study_ledger:"
	guildUsersKeyPrefix = "study_ledger_users:"

	// Number of attempts for the optimistic credit transaction
	creditMaxRetries = 5
)

// ErrInvalidAmount is returned when a credit amount is negative
var ErrInvalidAmount = errors.New("credit amount cannot be negative")

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger repository
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

func entryKey(guildID, userID string) string {
	return fmt.Sprintf("%s%s:%s", entryKeyPrefix, guildID, userID)
}

func guildUsersKey(guildID string) string {
	return fmt.Sprintf("%s%s", guildUsersKeyPrefix, guildID)
}

// Credit adds study seconds to a (guild, user) entry, applying any
// pending weekly rollover first. The read-modify-write runs inside a
// WATCH transaction so concurrent credits to the same pair serialize.
func (r *redisRepository) Credit(ctx context.Context, input *CreditInput) (*CreditOutput, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return nil, errors.New("input, guild ID and user ID cannot be empty")
	}

	if input.Seconds < 0 {
		return nil, ErrInvalidAmount
	}

	key := entryKey(input.GuildID, input.UserID)
	usersKey := guildUsersKey(input.GuildID)

	var updated *models.LedgerEntry

	txf := func(tx *redis.Tx) error {
		entry, err := readEntry(ctx, tx, key, input.GuildID, input.UserID)
		if err != nil {
			return err
		}

		anchor := models.WeekStart(input.At)
		if entry.WeekAnchor.Before(anchor) {
			// Lazily apply any missed weekly rollovers
			entry.WeekSeconds = 0
			entry.WeekAnchor = anchor
		}

		entry.AllTimeSeconds += input.Seconds
		entry.WeekSeconds += input.Seconds
		entry.UpdatedAt = input.At.UTC()

		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger entry: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, entryJSON, 0)
			pipe.SAdd(ctx, usersKey, input.UserID)
			return nil
		})
		if err != nil {
			return err
		}

		updated = entry
		return nil
	}

	for i := 0; i < creditMaxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return &CreditOutput{Entry: updated}, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// The key changed under us, retry with the fresh value
			continue
		}
		return nil, fmt.Errorf("failed to credit ledger entry: %w", err)
	}

	return nil, errors.New("failed to credit ledger entry: too many conflicts")
}

// GetEntry retrieves the entry for a (guild, user) pair from Redis
func (r *redisRepository) GetEntry(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return nil, errors.New("input, guild ID and user ID cannot be empty")
	}

	entry, err := readEntry(ctx, r.client, entryKey(input.GuildID, input.UserID), input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetEntryOutput{Entry: entry}, nil
}

// ListEntries retrieves all ledger entries for a guild from Redis
func (r *redisRepository) ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	userIDs, err := r.client.SMembers(ctx, guildUsersKey(input.GuildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger user IDs: %w", err)
	}

	if len(userIDs) == 0 {
		return &ListEntriesOutput{
			Entries: []*models.LedgerEntry{},
		}, nil
	}

	// Fetch all entries in one round trip using a pipeline
	pipe := r.client.Pipeline()
	entryCommands := make(map[string]*redis.StringCmd)

	for _, userID := range userIDs {
		entryCommands[userID] = pipe.Get(ctx, entryKey(input.GuildID, userID))
	}

	_, err = pipe.Exec(ctx)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	entries := make([]*models.LedgerEntry, 0, len(userIDs))
	for userID, cmd := range entryCommands {
		entryJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Entry was deleted between listing the set and fetching
				continue
			}
			return nil, fmt.Errorf("failed to get ledger entry for %s: %w", userID, err)
		}

		var entry models.LedgerEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger entry for %s: %w", userID, err)
		}

		entries = append(entries, &entry)
	}

	return &ListEntriesOutput{Entries: entries}, nil
}

// ResetWeek zeroes the weekly bucket for every entry in the guild
func (r *redisRepository) ResetWeek(ctx context.Context, input *ResetWeekInput) error {
	if input == nil || input.GuildID == "" {
		return errors.New("input and guild ID cannot be empty")
	}

	listOutput, err := r.ListEntries(ctx, &ListEntriesInput{GuildID: input.GuildID})
	if err != nil {
		return err
	}

	anchor := models.WeekStart(input.At)

	pipe := r.client.Pipeline()
	for _, entry := range listOutput.Entries {
		entry.WeekSeconds = 0
		entry.WeekAnchor = anchor
		entry.UpdatedAt = input.At.UTC()

		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger entry: %w", err)
		}

		pipe.Set(ctx, entryKey(entry.GuildID, entry.UserID), entryJSON, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reset weekly buckets: %w", err)
	}

	return nil
}

// readEntry loads one entry, returning a zero-valued entry when absent
func readEntry(ctx context.Context, c redis.Cmdable, key, guildID, userID string) (*models.LedgerEntry, error) {
	entryJSON, err := c.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &models.LedgerEntry{
				GuildID: guildID,
				UserID:  userID,
			}, nil
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	var entry models.LedgerEntry
	if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}

	return &entry, nil
}
