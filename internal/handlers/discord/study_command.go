package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/wrenware/studyhall/internal/models"
	leaderboardService "github.com/wrenware/studyhall/internal/services/leaderboard"
	"github.com/wrenware/studyhall/internal/services/messaging"
	sessionService "github.com/wrenware/studyhall/internal/services/session"
)

const (
	// leaderboardSize is how many places the leaderboard shows
	leaderboardSize = 10

	// historySize is how many recent sessions the history shows
	historySize = 5
)

// StudyCommand handles the /study command
type StudyCommand struct {
	BaseCommand
	sessionService     sessionService.Service
	leaderboardService leaderboardService.Service
	messagingService   messaging.Service
}

// NewStudyCommand creates a new study command handler
func NewStudyCommand(sessions sessionService.Service, leaderboards leaderboardService.Service, messages messaging.Service) *StudyCommand {
	return &StudyCommand{
		BaseCommand: BaseCommand{
			Name:        "study",
			Description: "Group study session commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Create the study room for this server (admin)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a study session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join the running study session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End the running study session",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "pomodoro",
					Description: "Pomodoro focus/break cycles",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "start",
							Description: "Start pomodoro cycles",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionInteger,
									Name:        "focus",
									Description: "Focus phase length in minutes (default 25)",
								},
								{
									Type:        discordgo.ApplicationCommandOptionInteger,
									Name:        "break",
									Description: "Break phase length in minutes (default 5)",
								},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "stop",
							Description: "Stop the running pomodoro cycles",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show the study-time leaderboard",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "window",
							Description: "Which leaderboard to show",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "All time", Value: string(models.LeaderboardWindowAllTime)},
								{Name: "This week", Value: string(models.LeaderboardWindowWeekly)},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "me",
					Description: "Show your own study time",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show recent study sessions",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resetweek",
					Description: "Reset this week's study totals (admin)",
				},
			},
		},
		sessionService:     sessions,
		leaderboardService: leaderboards,
		messagingService:   messages,
	}
}

// Handle processes a Discord interaction for the study command
func (c *StudyCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	guildID := i.GuildID
	channelID := i.ChannelID
	userID := i.Member.User.ID

	switch data.Options[0].Name {
	case "setup":
		return c.handleSetup(s, i, guildID)
	case "start":
		return c.handleStart(s, i, guildID, channelID, userID)
	case "join":
		return c.handleJoin(s, i, guildID, userID)
	case "end":
		return c.handleEnd(s, i, guildID)
	case "pomodoro":
		return c.handlePomodoro(s, i, guildID, channelID, data.Options[0])
	case "leaderboard":
		return c.handleLeaderboard(s, i, guildID, data.Options[0])
	case "me":
		return c.handleMe(s, i, guildID, userID)
	case "history":
		return c.handleHistory(s, i, guildID)
	case "resetweek":
		return c.handleResetWeek(s, i, guildID)
	default:
		return errors.New("unknown subcommand")
	}
}

// requireManager gates admin subcommands on the Manage Server permission
func (c *StudyCommand) requireManager(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.Member.Permissions&discordgo.PermissionManageServer != 0 {
		return true
	}

	if err := RespondWithError(s, i, "You need the Manage Server permission for that."); err != nil {
		log.Printf("Error sending permission response: %v", err)
	}
	return false
}

// respondServiceError turns a service error into a friendly ephemeral reply
func (c *StudyCommand) respondServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	msgOutput, msgErr := c.messagingService.GetErrorMessage(context.Background(), &messaging.GetErrorMessageInput{
		Err: err,
	})
	if msgErr != nil {
		return RespondWithError(s, i, err.Error())
	}
	return RespondWithError(s, i, msgOutput.Message)
}

// handleSetup handles the setup subcommand
func (c *StudyCommand) handleSetup(s *discordgo.Session, i *discordgo.InteractionCreate, guildID string) error {
	if !c.requireManager(s, i) {
		return nil
	}

	ctx := context.Background()
	output, err := c.sessionService.SetupRoom(ctx, &sessionService.SetupRoomInput{
		GuildID: guildID,
	})
	if err != nil {
		log.Printf("Error setting up study room in guild %s: %v", guildID, err)
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Study room ready: <#%s>", output.RoomID))
}

// handleStart handles the start subcommand
func (c *StudyCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, guildID, channelID, userID string) error {
	ctx := context.Background()
	output, err := c.sessionService.StartSession(ctx, &sessionService.StartSessionInput{
		GuildID:   guildID,
		ChannelID: channelID,
		StartedBy: userID,
	})
	if err != nil {
		log.Printf("Error starting session in guild %s: %v", guildID, err)
		return c.respondServiceError(s, i, err)
	}

	// The public announcement goes out through the notifier
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Session started in <#%s>.", output.RoomID))
}

// handleJoin handles the join subcommand
func (c *StudyCommand) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, guildID, userID string) error {
	ctx := context.Background()
	output, err := c.sessionService.JoinSession(ctx, &sessionService.JoinSessionInput{
		GuildID:    guildID,
		UserID:     userID,
		MoveToRoom: true,
	})
	if err != nil {
		if output == nil || errors.Is(err, sessionService.ErrNotActive) {
			return c.respondServiceError(s, i, err)
		}

		// Moving can fail when the member is not in voice; they are still
		// a participant and accrue time once they sit down
		log.Printf("Error moving %s into study room in guild %s: %v", userID, guildID, err)
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("You're in! Hop into <#%s> whenever you're ready.", output.RoomID))
	}

	if output.AlreadyJoined {
		return RespondWithEphemeralMessage(s, i, "You're already in this session. Keep at it!")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You're in! See you in <#%s>.", output.RoomID))
}

// handleEnd handles the end subcommand
func (c *StudyCommand) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate, guildID string) error {
	ctx := context.Background()
	output, err := c.sessionService.EndSession(ctx, &sessionService.EndSessionInput{
		GuildID: guildID,
	})
	if err != nil {
		if output == nil {
			log.Printf("Error ending session in guild %s: %v", guildID, err)
			return c.respondServiceError(s, i, err)
		}

		// The session ended but some credits failed; say so rather than
		// pretending everything was recorded
		log.Printf("Session %s ended with credit errors in guild %s: %v", output.SessionID, guildID, err)
		return RespondWithEphemeralMessage(s, i,
			"Session ended, but some study time could not be recorded. It will be picked up next session.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Session ended after %s. %d members credited.", fmtDuration(output.Duration), output.Participants))
}

// handlePomodoro handles the pomodoro subcommand group
func (c *StudyCommand) handlePomodoro(s *discordgo.Session, i *discordgo.InteractionCreate, guildID, channelID string, group *discordgo.ApplicationCommandInteractionDataOption) error {
	if len(group.Options) == 0 {
		return errors.New("missing pomodoro subcommand")
	}

	sub := group.Options[0]
	ctx := context.Background()

	switch sub.Name {
	case "start":
		var focus, brk time.Duration
		for _, opt := range sub.Options {
			switch opt.Name {
			case "focus":
				focus = time.Duration(opt.IntValue()) * time.Minute
			case "break":
				brk = time.Duration(opt.IntValue()) * time.Minute
			}
		}

		output, err := c.sessionService.StartPomodoro(ctx, &sessionService.StartPomodoroInput{
			GuildID:       guildID,
			ChannelID:     channelID,
			FocusDuration: focus,
			BreakDuration: brk,
		})
		if err != nil {
			log.Printf("Error starting pomodoro in guild %s: %v", guildID, err)
			return c.respondServiceError(s, i, err)
		}

		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("Pomodoro running: %s focus / %s break.", fmtDuration(output.FocusDuration), fmtDuration(output.BreakDuration)))

	case "stop":
		output, err := c.sessionService.StopPomodoro(ctx, &sessionService.StopPomodoroInput{
			GuildID: guildID,
		})
		if err != nil {
			log.Printf("Error stopping pomodoro in guild %s: %v", guildID, err)
			return c.respondServiceError(s, i, err)
		}

		if !output.Stopped {
			return RespondWithEphemeralMessage(s, i, "No pomodoro is running.")
		}
		return RespondWithEphemeralMessage(s, i, "Pomodoro stopped.")

	default:
		return errors.New("unknown pomodoro subcommand")
	}
}

// handleLeaderboard handles the leaderboard subcommand
func (c *StudyCommand) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, guildID string, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	window := models.LeaderboardWindowAllTime
	for _, opt := range sub.Options {
		if opt.Name == "window" {
			window = models.LeaderboardWindow(opt.StringValue())
		}
	}

	ctx := context.Background()
	output, err := c.leaderboardService.GetLeaderboard(ctx, &leaderboardService.GetLeaderboardInput{
		GuildID: guildID,
		Window:  window,
		Limit:   leaderboardSize,
	})
	if err != nil {
		log.Printf("Error building leaderboard for guild %s: %v", guildID, err)
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEmbed(s, i, windowTitle(output.Snapshot.Window), renderLeaderboard(output.Snapshot), nil)
}

// handleMe handles the me subcommand
func (c *StudyCommand) handleMe(s *discordgo.Session, i *discordgo.InteractionCreate, guildID, userID string) error {
	ctx := context.Background()
	output, err := c.leaderboardService.GetUserTime(ctx, &leaderboardService.GetUserTimeInput{
		GuildID: guildID,
		UserID:  userID,
	})
	if err != nil {
		log.Printf("Error fetching study time for %s in guild %s: %v", userID, guildID, err)
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("You've studied **%s** all time and **%s** this week.",
			fmtSeconds(output.AllTimeSeconds), fmtSeconds(output.WeekSeconds)))
}

// handleHistory handles the history subcommand
func (c *StudyCommand) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, guildID string) error {
	ctx := context.Background()
	output, err := c.sessionService.GetHistory(ctx, &sessionService.GetHistoryInput{
		GuildID: guildID,
		Limit:   historySize,
	})
	if err != nil {
		log.Printf("Error fetching session history for guild %s: %v", guildID, err)
		return c.respondServiceError(s, i, err)
	}

	return RespondWithEmbed(s, i, "Recent Study Sessions", renderHistory(output.Sessions), nil)
}

// handleResetWeek handles the resetweek subcommand
func (c *StudyCommand) handleResetWeek(s *discordgo.Session, i *discordgo.InteractionCreate, guildID string) error {
	if !c.requireManager(s, i) {
		return nil
	}

	ctx := context.Background()
	output, err := c.leaderboardService.ResetWeek(ctx, &leaderboardService.ResetWeekInput{
		GuildID: guildID,
	})
	if err != nil {
		log.Printf("Error resetting weekly totals for guild %s: %v", guildID, err)
		return c.respondServiceError(s, i, err)
	}

	return RespondWithMessage(s, i,
		fmt.Sprintf("Weekly study totals reset for %d members. Fresh week, fresh start!", output.Users))
}
