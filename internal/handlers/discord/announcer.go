package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/wrenware/studyhall/internal/services/messaging"
	sessionService "github.com/wrenware/studyhall/internal/services/session"
)

// Announcer posts session lifecycle announcements to the text channel a
// session was started from. It implements the session service's Notifier.
type Announcer struct {
	session   *discordgo.Session
	messaging messaging.Service
}

// NewAnnouncer creates an announcer posting through the given Discord session
func NewAnnouncer(s *discordgo.Session, messagingSvc messaging.Service) *Announcer {
	return &Announcer{
		session:   s,
		messaging: messagingSvc,
	}
}

// SessionStarted announces a new study session
func (a *Announcer) SessionStarted(note *sessionService.SessionStartedNote) {
	if note.ChannelID == "" {
		return
	}

	output, err := a.messaging.GetSessionStartedMessage(context.Background(), &messaging.GetSessionStartedMessageInput{
		StarterName: "<@" + note.StartedBy + ">",
		RoomMention: "<#" + note.RoomID + ">",
	})
	if err != nil {
		log.Printf("Error building session started message: %v", err)
		return
	}

	a.post(note.ChannelID, output.Message)
}

// SessionEnded announces the end of a study session
func (a *Announcer) SessionEnded(note *sessionService.SessionEndedNote) {
	if note.ChannelID == "" {
		return
	}

	output, err := a.messaging.GetSessionEndedMessage(context.Background(), &messaging.GetSessionEndedMessageInput{
		Duration:     note.Duration,
		Participants: note.Participants,
	})
	if err != nil {
		log.Printf("Error building session ended message: %v", err)
		return
	}

	a.post(note.ChannelID, output.Message)
}

// PomodoroPhaseChanged announces a pomodoro phase transition
func (a *Announcer) PomodoroPhaseChanged(note *sessionService.PomodoroPhaseNote) {
	if note.ChannelID == "" {
		return
	}

	output, err := a.messaging.GetPhaseMessage(context.Background(), &messaging.GetPhaseMessageInput{
		Phase:      note.Phase,
		CycleIndex: note.CycleIndex,
		Duration:   note.Duration,
	})
	if err != nil {
		log.Printf("Error building phase message: %v", err)
		return
	}

	a.post(note.ChannelID, output.Message)
}

func (a *Announcer) post(channelID, message string) {
	if _, err := a.session.ChannelMessageSend(channelID, message); err != nil {
		log.Printf("Error posting announcement to channel %s: %v", channelID, err)
	}
}
