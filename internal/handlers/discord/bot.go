package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	leaderboardService "github.com/wrenware/studyhall/internal/services/leaderboard"
	"github.com/wrenware/studyhall/internal/services/messaging"
	sessionService "github.com/wrenware/studyhall/internal/services/session"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the shared Discord session; the voice adapter uses the
	// same one so both see the same gateway state
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Services
	SessionService     sessionService.Service
	LeaderboardService leaderboardService.Service
	MessagingService   messaging.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.LeaderboardService == nil {
		return nil, errors.New("leaderboard service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	bot := &Bot{
		session:    cfg.Session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
	}

	// Voice state tracking drives both the mute policy and the ledger
	cfg.Session.Identify.Intents |= discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates

	cfg.Session.AddHandler(bot.handleInteraction)
	cfg.Session.AddHandler(bot.handleVoiceStateUpdate)

	return bot, nil
}

// Start opens the gateway connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	studyCmd := NewStudyCommand(b.config.SessionService, b.config.LeaderboardService, b.config.MessagingService)
	if err := b.RegisterCommand(studyCmd); err != nil {
		return fmt.Errorf("failed to register study command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// A guild ID scopes the command to one server, useful in development;
	// empty registers it globally
	if b.config.GuildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), b.config.GuildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
		if err := h.Handle(s, i); err != nil {
			log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
		}
	}
}

// handleVoiceStateUpdate translates gateway voice events into room
// occupancy events. Leaving one channel for another produces a leave for
// the old room and a join for the new one; the session service ignores
// rooms it is not watching.
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	if s.State.User != nil && e.UserID == s.State.User.ID {
		return
	}

	var before string
	if e.BeforeUpdate != nil {
		before = e.BeforeUpdate.ChannelID
	}
	after := e.ChannelID

	// Mute and deafen toggles arrive on the same event type
	if before == after {
		return
	}

	ctx := context.Background()

	if before != "" {
		err := b.config.SessionService.HandleRoomEvent(ctx, &sessionService.HandleRoomEventInput{
			GuildID: e.GuildID,
			UserID:  e.UserID,
			RoomID:  before,
			Joined:  false,
		})
		if err != nil {
			log.Printf("Error handling voice leave for %s in guild %s: %v", e.UserID, e.GuildID, err)
		}
	}

	if after != "" {
		err := b.config.SessionService.HandleRoomEvent(ctx, &sessionService.HandleRoomEventInput{
			GuildID: e.GuildID,
			UserID:  e.UserID,
			RoomID:  after,
			Joined:  true,
		})
		if err != nil {
			log.Printf("Error handling voice join for %s in guild %s: %v", e.UserID, e.GuildID, err)
		}
	}
}
