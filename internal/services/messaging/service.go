package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/wrenware/studyhall/internal/models"
	leaderboardService "github.com/wrenware/studyhall/internal/services/leaderboard"
	sessionService "github.com/wrenware/studyhall/internal/services/session"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	// Create a new random source with the current time as seed
	source := rand.NewSource(time.Now().UnixNano())

	return &service{
		rand: rand.New(source),
	}, nil
}

// GetSessionStartedMessage returns an announcement for a session start
func (s *service) GetSessionStartedMessage(ctx context.Context, input *GetSessionStartedMessageInput) (*GetSessionStartedMessageOutput, error) {
	tone := input.PreferredTone
	if tone == "" {
		tone = ToneEncouraging
	}

	var messages []string
	switch tone {
	case ToneFunny:
		messages = []string{
			"%s rang the bell! Everyone into %s — your notifications will survive without you.",
			"Study time, courtesy of %s. The mute hammer is watching %s. 🔨",
			"%s has declared war on procrastination. Report to %s!",
		}
	case ToneNeutral:
		messages = []string{
			"%s started a study session in %s.",
			"Study session started by %s. Join %s to take part.",
		}
	default:
		messages = []string{
			"📚 %s started a study session! Hop into %s and let's get things done.",
			"Focus time! %s opened a session in %s — every minute counts.",
			"%s kicked off a session. Grab a seat in %s and start the grind!",
		}
	}

	message := fmt.Sprintf(messages[s.rand.Intn(len(messages))], input.StarterName, input.RoomMention)
	return &GetSessionStartedMessageOutput{
		Message: message,
		Tone:    tone,
	}, nil
}

// GetSessionEndedMessage returns an announcement for a session end
func (s *service) GetSessionEndedMessage(ctx context.Context, input *GetSessionEndedMessageInput) (*GetSessionEndedMessageOutput, error) {
	tone := input.PreferredTone
	if tone == "" {
		tone = ToneEncouraging
	}

	duration := humanDuration(input.Duration)

	var messages []string
	switch tone {
	case ToneFunny:
		messages = []string{
			"Session over after %s. %d brains were harmed in the making of this knowledge.",
			"That's %s of studying logged for %d members. You may now doomscroll guilt-free.",
		}
	case ToneNeutral:
		messages = []string{
			"Study session ended after %s. %d members were credited.",
		}
	default:
		messages = []string{
			"🎉 Session complete! %s of focus banked for %d members. Well done!",
			"And that's a wrap — %s studied, %d members credited. See you next session!",
		}
	}

	message := fmt.Sprintf(messages[s.rand.Intn(len(messages))], duration, input.Participants)
	return &GetSessionEndedMessageOutput{
		Message: message,
		Tone:    tone,
	}, nil
}

// GetPhaseMessage returns an announcement for a pomodoro phase change
func (s *service) GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error) {
	duration := humanDuration(input.Duration)

	var messages []string
	switch input.Phase {
	case models.PomodoroPhaseFocus:
		messages = []string{
			"🍅 Focus time! Heads down for the next %s.",
			"Back to work — %s of focus starts now.",
			"Focus phase started. %s on the clock, make them count.",
		}
	case models.PomodoroPhaseBreak:
		messages = []string{
			"☕ Break time! Stretch, hydrate, breathe — %s before the next round.",
			"Focus block done, take %s. You've earned it.",
			"Break phase started. Mics are open for %s.",
		}
	default:
		messages = []string{
			"Pomodoro stopped. The session keeps going at its own pace.",
			"Timer's off — free-form studying from here.",
		}
	}

	message := messages[s.rand.Intn(len(messages))]
	if input.Phase != models.PomodoroPhaseStopped {
		message = fmt.Sprintf(message, duration)
	}

	return &GetPhaseMessageOutput{Message: message}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	var message string

	switch {
	case errors.Is(input.Err, sessionService.ErrNoRoomConfigured):
		message = "There's no study room set up yet. Ask an admin to run `/study setup` first."
	case errors.Is(input.Err, sessionService.ErrAlreadyActive):
		message = "A study session is already running — jump in with `/study join`!"
	case errors.Is(input.Err, sessionService.ErrNotActive):
		message = "No study session is running right now. Start one with `/study start`."
	case errors.Is(input.Err, sessionService.ErrPomodoroRunning):
		message = "A pomodoro is already ticking. Stop it first with `/study pomodoro stop`."
	case errors.Is(input.Err, leaderboardService.ErrInvalidWindow):
		message = "I only know `alltime` and `weekly` leaderboards."
	default:
		message = "Something went wrong on my end. Give it another try in a moment."
	}

	return &GetErrorMessageOutput{Message: message}, nil
}

// humanDuration renders a duration the way people say it, dropping zero
// components: "2h 5m", "25m", "45s"
func humanDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
