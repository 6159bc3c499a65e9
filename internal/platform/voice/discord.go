package voice

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	// DefaultCategoryName is the channel category created on first setup
	DefaultCategoryName = "Study Sessions"

	// DefaultRoomName is the shared study voice channel created on setup
	DefaultRoomName = "Focused Study Room"
)

// Config holds configuration for the Discord voice adapter
type Config struct {
	// Session is the shared Discord session
	Session *discordgo.Session

	// CategoryName overrides the created category name
	CategoryName string

	// RoomName overrides the created voice channel name
	RoomName string
}

// discordAdapter implements the Adapter interface using discordgo
type discordAdapter struct {
	session      *discordgo.Session
	categoryName string
	roomName     string
}

// NewDiscord creates a new discordgo-backed voice adapter
func NewDiscord(cfg *Config) (*discordAdapter, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	categoryName := cfg.CategoryName
	if categoryName == "" {
		categoryName = DefaultCategoryName
	}

	roomName := cfg.RoomName
	if roomName == "" {
		roomName = DefaultRoomName
	}

	return &discordAdapter{
		session:      cfg.Session,
		categoryName: categoryName,
		roomName:     roomName,
	}, nil
}

// EnsureRoom creates or restores the shared study voice room
func (d *discordAdapter) EnsureRoom(ctx context.Context, input *EnsureRoomInput) (*EnsureRoomOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	// Reuse the configured room when the channel still exists
	if input.RoomID != "" {
		channel, err := d.session.Channel(input.RoomID)
		if err == nil && channel.Type == discordgo.ChannelTypeGuildVoice {
			return &EnsureRoomOutput{
				RoomID:     channel.ID,
				CategoryID: channel.ParentID,
			}, nil
		}
	}

	categoryID, err := d.ensureCategory(input.GuildID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	// Everyone may connect to the room but no one may speak; the mute
	// policy enforces the rest per-member.
	channel, err := d.session.GuildChannelCreateComplex(input.GuildID, discordgo.GuildChannelCreateData{
		Name:     d.roomName,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: categoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:    input.GuildID, // @everyone role shares the guild ID
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionVoiceConnect,
				Deny:  discordgo.PermissionVoiceSpeak,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create study voice channel: %w", err)
	}

	return &EnsureRoomOutput{
		RoomID:     channel.ID,
		CategoryID: categoryID,
	}, nil
}

// ensureCategory finds or creates the study channel category
func (d *discordAdapter) ensureCategory(guildID, categoryID string) (string, error) {
	if categoryID != "" {
		channel, err := d.session.Channel(categoryID)
		if err == nil && channel.Type == discordgo.ChannelTypeGuildCategory {
			return channel.ID, nil
		}
	}

	channels, err := d.session.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list guild channels: %w", err)
	}

	for _, channel := range channels {
		if channel.Type == discordgo.ChannelTypeGuildCategory && channel.Name == d.categoryName {
			return channel.ID, nil
		}
	}

	category, err := d.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: d.categoryName,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create study category: %w", err)
	}

	return category.ID, nil
}

// ListOccupants returns the non-bot user IDs currently in a voice room
func (d *discordAdapter) ListOccupants(ctx context.Context, input *ListOccupantsInput) (*ListOccupantsOutput, error) {
	if input == nil || input.GuildID == "" || input.RoomID == "" {
		return nil, errors.New("input, guild ID and room ID cannot be empty")
	}

	guild, err := d.session.State.Guild(input.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild state: %w", err)
	}

	userIDs := make([]string, 0, len(guild.VoiceStates))
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != input.RoomID {
			continue
		}

		member, err := d.session.State.Member(input.GuildID, vs.UserID)
		if err == nil && member.User != nil && member.User.Bot {
			continue
		}

		userIDs = append(userIDs, vs.UserID)
	}

	return &ListOccupantsOutput{UserIDs: userIDs}, nil
}

// SetMuted applies or removes the server mute flag for one member
func (d *discordAdapter) SetMuted(ctx context.Context, input *SetMutedInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return errors.New("input, guild ID and user ID cannot be empty")
	}

	if err := d.session.GuildMemberMute(input.GuildID, input.UserID, input.Muted); err != nil {
		return fmt.Errorf("failed to set mute for %s: %w", input.UserID, err)
	}

	return nil
}

// MoveMember moves a member into a voice room
func (d *discordAdapter) MoveMember(ctx context.Context, input *MoveMemberInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" || input.RoomID == "" {
		return errors.New("input, guild ID, user ID and room ID cannot be empty")
	}

	if err := d.session.GuildMemberMove(input.GuildID, input.UserID, &input.RoomID); err != nil {
		return fmt.Errorf("failed to move %s into the study room: %w", input.UserID, err)
	}

	return nil
}
