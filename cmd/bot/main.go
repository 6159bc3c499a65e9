package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/wrenware/studyhall/internal/common/clock"
	"github.com/wrenware/studyhall/internal/common/timer"
	"github.com/wrenware/studyhall/internal/common/uuid"
	"github.com/wrenware/studyhall/internal/handlers/discord"
	"github.com/wrenware/studyhall/internal/platform/voice"
	"github.com/wrenware/studyhall/internal/repositories/guild"
	"github.com/wrenware/studyhall/internal/repositories/ledger"
	sessionRepo "github.com/wrenware/studyhall/internal/repositories/session"
	leaderboardService "github.com/wrenware/studyhall/internal/services/leaderboard"
	"github.com/wrenware/studyhall/internal/services/messaging"
	sessionService "github.com/wrenware/studyhall/internal/services/session"
)

func main() {
	// Load .env if present; deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	guildRepo, err := guild.NewRedis(&guild.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create guild repository: %v", err)
	}

	sessRepo, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}

	ledgerRepo, err := ledger.NewRedis(&ledger.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create ledger repository: %v", err)
	}

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// One Discord session is shared by the voice adapter and the bot so
	// both see the same gateway state
	dg, err := discordgo.New("Bot " + discordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	voiceAdapter, err := voice.NewDiscord(&voice.Config{
		Session:      dg,
		CategoryName: getEnv("STUDY_CATEGORY_NAME", ""),
		RoomName:     getEnv("STUDY_ROOM_NAME", ""),
	})
	if err != nil {
		log.Fatalf("Failed to create voice adapter: %v", err)
	}

	// Initialize services
	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	announcer := discord.NewAnnouncer(dg, messagingSvc)

	sessionSvc, err := sessionService.New(&sessionService.Config{
		GuildRepo:     guildRepo,
		SessionRepo:   sessRepo,
		LedgerRepo:    ledgerRepo,
		Voice:         voiceAdapter,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Scheduler:     &timer.DefaultScheduler{},
		Notifier:      announcer,
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	leaderboardSvc, err := leaderboardService.New(&leaderboardService.Config{
		LedgerRepo: ledgerRepo,
		Clock:      &clock.DefaultClock{},
	})
	if err != nil {
		log.Fatalf("Failed to create leaderboard service: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:            dg,
		ApplicationID:      getEnv("APPLICATION_ID", ""),
		GuildID:            getEnv("GUILD_ID", ""),
		SessionService:     sessionSvc,
		LeaderboardService: leaderboardSvc,
		MessagingService:   messagingSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
