package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/wrenware/studyhall/internal/common/timer"
	"github.com/wrenware/studyhall/internal/models"
	sessionRepo "github.com/wrenware/studyhall/internal/repositories/session"
)

// pomodoroRun is the live half of a pomodoro cycle: the armed timer and
// the generation token its callbacks carry. A callback whose token no
// longer matches the current run is stale and must not transition
// anything, which is how Stop wins a race with a firing timer.
type pomodoroRun struct {
	gen       int
	handle    timer.Handle
	channelID string
}

// StartPomodoro starts focus/break cycles inside the active session
func (s *service) StartPomodoro(ctx context.Context, input *StartPomodoroInput) (*StartPomodoroOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	focus := input.FocusDuration
	if focus <= 0 {
		focus = models.DefaultFocusDuration
	}

	brk := input.BreakDuration
	if brk <= 0 {
		brk = models.DefaultBreakDuration
	}

	gs := s.guild(input.GuildID)
	gs.mu.Lock()

	if !gs.session.Active() {
		gs.mu.Unlock()
		return nil, ErrNotActive
	}

	if gs.pom != nil {
		gs.mu.Unlock()
		return nil, ErrPomodoroRunning
	}

	sess := gs.session
	now := s.clock.Now()
	sess.Pomodoro = &models.PomodoroCycle{
		Phase:          models.PomodoroPhaseFocus,
		FocusDuration:  focus,
		BreakDuration:  brk,
		PhaseStartedAt: now,
	}

	gs.pomGen++
	gen := gs.pomGen
	gs.pom = &pomodoroRun{
		gen:       gen,
		channelID: input.ChannelID,
		handle: s.scheduler.AfterFunc(focus, func() {
			s.onPomodoroTimer(input.GuildID, gen)
		}),
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		log.Printf("failed to save session %s: %v", sess.ID, err)
	}
	gs.mu.Unlock()

	s.notifier.PomodoroPhaseChanged(&PomodoroPhaseNote{
		GuildID:   input.GuildID,
		ChannelID: input.ChannelID,
		Phase:     models.PomodoroPhaseFocus,
		Duration:  focus,
	})

	return &StartPomodoroOutput{
		FocusDuration: focus,
		BreakDuration: brk,
	}, nil
}

// StopPomodoro stops the running pomodoro cycle; calling it without a
// running cycle is a no-op
func (s *service) StopPomodoro(ctx context.Context, input *StopPomodoroInput) (*StopPomodoroOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	gs := s.guild(input.GuildID)
	gs.mu.Lock()

	if gs.pom == nil {
		gs.mu.Unlock()
		return &StopPomodoroOutput{Stopped: false}, nil
	}

	channelID := gs.pom.channelID
	gs.pom.handle.Stop()
	gs.pom = nil

	sess := gs.session
	var toMute, toUnmute []string
	if sess.Active() {
		sess.Pomodoro = nil
		if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
			log.Printf("failed to save session %s: %v", sess.ID, err)
		}

		// Stopping mid-break re-applies the session's baseline enforcement
		occupants := s.listOccupants(ctx, input.GuildID, sess.RoomID)
		toMute, toUnmute = gs.mute.Evaluate(gs.enforcing(), occupants)
	}
	gs.mu.Unlock()

	s.applyMuteChanges(ctx, gs, input.GuildID, toMute, toUnmute)
	s.notifier.PomodoroPhaseChanged(&PomodoroPhaseNote{
		GuildID:   input.GuildID,
		ChannelID: channelID,
		Phase:     models.PomodoroPhaseStopped,
	})

	return &StopPomodoroOutput{Stopped: true}, nil
}

// onPomodoroTimer handles a phase timer firing. The generation token is
// checked under the guild lock; a mismatch means the run was stopped or
// replaced after this timer was armed and the callback is discarded.
func (s *service) onPomodoroTimer(guildID string, gen int) {
	ctx := context.Background()

	gs := s.guild(guildID)
	gs.mu.Lock()

	if gs.pom == nil || gs.pom.gen != gen || !gs.session.Active() {
		gs.mu.Unlock()
		return
	}

	sess := gs.session
	cycle := sess.Pomodoro
	now := s.clock.Now()

	var next time.Duration
	switch cycle.Phase {
	case models.PomodoroPhaseFocus:
		// A completed focus phase bumps the cycle count
		cycle.CycleIndex++
		cycle.Phase = models.PomodoroPhaseBreak
		next = cycle.BreakDuration
	default:
		cycle.Phase = models.PomodoroPhaseFocus
		next = cycle.FocusDuration
	}

	cycle.PhaseStartedAt = now
	gs.pom.handle = s.scheduler.AfterFunc(next, func() {
		s.onPomodoroTimer(guildID, gen)
	})

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		log.Printf("failed to save session %s: %v", sess.ID, err)
	}

	channelID := gs.pom.channelID
	phase := cycle.Phase
	cycleIndex := cycle.CycleIndex

	occupants := s.listOccupants(ctx, guildID, sess.RoomID)
	toMute, toUnmute := gs.mute.Evaluate(gs.enforcing(), occupants)
	gs.mu.Unlock()

	s.applyMuteChanges(ctx, gs, guildID, toMute, toUnmute)
	s.notifier.PomodoroPhaseChanged(&PomodoroPhaseNote{
		GuildID:    guildID,
		ChannelID:  channelID,
		Phase:      phase,
		CycleIndex: cycleIndex,
		Duration:   next,
	})
}
