package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/wrenware/studyhall/internal/common/clock"
	"github.com/wrenware/studyhall/internal/common/timer"
	"github.com/wrenware/studyhall/internal/common/uuid"
	"github.com/wrenware/studyhall/internal/models"
	"github.com/wrenware/studyhall/internal/platform/voice"
	guildRepo "github.com/wrenware/studyhall/internal/repositories/guild"
	ledgerRepo "github.com/wrenware/studyhall/internal/repositories/ledger"
	sessionRepo "github.com/wrenware/studyhall/internal/repositories/session"
)

// guildState is the per-guild unit of serialization. Every state-machine
// transition for a guild runs under its mutex; operations on different
// guilds never contend.
type guildState struct {
	mu sync.Mutex

	// session is the guild's current session, nil while idle
	session *models.Session

	// mute tracks the members muted by this session's policy
	mute *mutePolicy

	// pom is the running pomodoro cycle, nil when none
	pom *pomodoroRun

	// pomGen issues generation tokens for pomodoro timer callbacks
	pomGen int
}

// enforcing reports whether mute enforcement currently applies: the
// session must be active and not in a pomodoro break
func (g *guildState) enforcing() bool {
	if !g.session.Active() {
		return false
	}
	if g.session.Pomodoro != nil && g.session.Pomodoro.Phase == models.PomodoroPhaseBreak {
		return false
	}
	return true
}

// service implements the Service interface
type service struct {
	guildRepo   guildRepo.Repository
	sessionRepo sessionRepo.Repository
	ledgerRepo  ledgerRepo.Repository
	voice       voice.Adapter
	clock       clock.Clock
	uuidGen     uuid.UUID
	scheduler   timer.Scheduler
	notifier    Notifier

	mu     sync.Mutex
	guilds map[string]*guildState
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GuildRepo == nil {
		return nil, ErrNilGuildRepo
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}

	if cfg.Voice == nil {
		return nil, ErrNilVoiceAdapter
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &service{
		guildRepo:   cfg.GuildRepo,
		sessionRepo: cfg.SessionRepo,
		ledgerRepo:  cfg.LedgerRepo,
		voice:       cfg.Voice,
		clock:       cfg.Clock,
		uuidGen:     cfg.UUIDGenerator,
		scheduler:   cfg.Scheduler,
		notifier:    notifier,
		guilds:      make(map[string]*guildState),
	}, nil
}

// guild returns the state object for a guild, creating it on first use
func (s *service) guild(guildID string) *guildState {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, ok := s.guilds[guildID]
	if !ok {
		gs = &guildState{}
		s.guilds[guildID] = gs
	}
	return gs
}

// SetupRoom creates or restores the guild's study voice room and stores
// it in the guild configuration
func (s *service) SetupRoom(ctx context.Context, input *SetupRoomInput) (*SetupRoomOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	var roomID, categoryID string
	configOutput, err := s.guildRepo.GetConfig(ctx, &guildRepo.GetConfigInput{
		GuildID: input.GuildID,
	})
	if err == nil {
		roomID = configOutput.Config.StudyRoomID
		categoryID = configOutput.Config.CategoryID
	} else if !errors.Is(err, guildRepo.ErrConfigNotFound) {
		return nil, err
	}

	roomOutput, err := s.voice.EnsureRoom(ctx, &voice.EnsureRoomInput{
		GuildID:    input.GuildID,
		RoomID:     roomID,
		CategoryID: categoryID,
	})
	if err != nil {
		return nil, err
	}

	err = s.guildRepo.SaveConfig(ctx, &guildRepo.SaveConfigInput{
		Config: &models.GuildConfig{
			GuildID:     input.GuildID,
			StudyRoomID: roomOutput.RoomID,
			CategoryID:  roomOutput.CategoryID,
			UpdatedAt:   s.clock.Now(),
		},
	})
	if err != nil {
		return nil, err
	}

	return &SetupRoomOutput{RoomID: roomOutput.RoomID}, nil
}

// StartSession starts a study session in the guild's study room
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	configOutput, err := s.guildRepo.GetConfig(ctx, &guildRepo.GetConfigInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		if errors.Is(err, guildRepo.ErrConfigNotFound) {
			return nil, ErrNoRoomConfigured
		}
		return nil, err
	}

	roomID := configOutput.Config.StudyRoomID
	if roomID == "" {
		return nil, ErrNoRoomConfigured
	}

	gs := s.guild(input.GuildID)
	gs.mu.Lock()

	if gs.session.Active() {
		gs.mu.Unlock()
		return nil, ErrAlreadyActive
	}

	now := s.clock.Now()
	sess := &models.Session{
		ID:                s.uuidGen.NewUUID(),
		GuildID:           input.GuildID,
		RoomID:            roomID,
		AnnounceChannelID: input.ChannelID,
		Status:            models.SessionStatusActive,
		StartedAt:         now,
		Participants:      make(map[string]time.Time),
	}

	// Members already in the room accrue time from the session start
	occupants := s.listOccupants(ctx, input.GuildID, roomID)
	for _, userID := range occupants {
		sess.Participants[userID] = now
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		gs.mu.Unlock()
		return nil, err
	}

	gs.session = sess
	gs.mute = newMutePolicy()
	toMute, toUnmute := gs.mute.Evaluate(gs.enforcing(), occupants)
	gs.mu.Unlock()

	s.applyMuteChanges(ctx, gs, input.GuildID, toMute, toUnmute)
	s.notifier.SessionStarted(&SessionStartedNote{
		GuildID:   input.GuildID,
		SessionID: sess.ID,
		RoomID:    roomID,
		ChannelID: input.ChannelID,
		StartedBy: input.StartedBy,
	})

	return &StartSessionOutput{
		SessionID: sess.ID,
		RoomID:    roomID,
	}, nil
}

// JoinSession records a user as a session participant
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return nil, errors.New("input, guild ID and user ID cannot be empty")
	}

	gs := s.guild(input.GuildID)
	gs.mu.Lock()

	if !gs.session.Active() {
		gs.mu.Unlock()
		return nil, ErrNotActive
	}

	sess := gs.session
	_, alreadyJoined := sess.Participants[input.UserID]
	if !alreadyJoined {
		// Repeat joins keep the original join time
		sess.Participants[input.UserID] = s.clock.Now()
		if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
			log.Printf("failed to save session %s: %v", sess.ID, err)
		}
	}

	roomID := sess.RoomID
	gs.mu.Unlock()

	if input.MoveToRoom {
		err := s.voice.MoveMember(ctx, &voice.MoveMemberInput{
			GuildID: input.GuildID,
			UserID:  input.UserID,
			RoomID:  roomID,
		})
		if err != nil {
			// The participant is recorded either way; the room event for
			// the eventual move re-runs the mute policy
			return &JoinSessionOutput{RoomID: roomID, AlreadyJoined: alreadyJoined}, err
		}
	}

	return &JoinSessionOutput{
		RoomID:        roomID,
		AlreadyJoined: alreadyJoined,
	}, nil
}

// EndSession ends the active session, unmutes every tracked member and
// credits each participant's accrued study time
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	gs := s.guild(input.GuildID)
	gs.mu.Lock()

	if !gs.session.Active() {
		gs.mu.Unlock()
		return nil, ErrNotActive
	}

	now := s.clock.Now()
	sess := gs.session

	// Session end implies pomodoro stop; the generation token in gs.pom
	// is discarded so a concurrently firing timer is ignored
	if gs.pom != nil {
		gs.pom.handle.Stop()
		gs.pom = nil
	}

	sess.Status = models.SessionStatusEnded
	sess.EndedAt = now
	sess.DurationSeconds = int64(now.Sub(sess.StartedAt).Seconds())
	sess.Pomodoro = nil

	credits := make(map[string]int64, len(sess.Participants))
	for userID, joinedAt := range sess.Participants {
		credits[userID] = accruedSeconds(sess.StartedAt, joinedAt, now)
	}

	// Disengaging the policy releases every member we muted
	_, toUnmute := gs.mute.Evaluate(false, nil)
	gs.mute = nil
	gs.session = nil
	gs.mu.Unlock()

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		log.Printf("failed to close session record %s: %v", sess.ID, err)
	}

	var creditErr error
	for userID, seconds := range credits {
		_, err := s.ledgerRepo.Credit(ctx, &ledgerRepo.CreditInput{
			GuildID: input.GuildID,
			UserID:  userID,
			Seconds: seconds,
			At:      now,
		})
		if err != nil {
			log.Printf("failed to credit %ds to %s in guild %s: %v", seconds, userID, input.GuildID, err)
			if creditErr == nil {
				creditErr = err
			}
		}
	}

	s.applyMuteChanges(ctx, gs, input.GuildID, nil, toUnmute)
	s.notifier.SessionEnded(&SessionEndedNote{
		GuildID:      input.GuildID,
		SessionID:    sess.ID,
		ChannelID:    sess.AnnounceChannelID,
		Duration:     now.Sub(sess.StartedAt),
		Participants: len(credits),
	})

	return &EndSessionOutput{
		SessionID:    sess.ID,
		Duration:     now.Sub(sess.StartedAt),
		Participants: len(credits),
	}, creditErr
}

// GetHistory returns the guild's most recent sessions, newest first
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	listOutput, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{
		GuildID: input.GuildID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &GetHistoryOutput{Sessions: listOutput.Sessions}, nil
}

// HandleRoomEvent processes a member joining or leaving the study room
// while a session is active
func (s *service) HandleRoomEvent(ctx context.Context, input *HandleRoomEventInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return errors.New("input, guild ID and user ID cannot be empty")
	}

	gs := s.guild(input.GuildID)
	gs.mu.Lock()

	sess := gs.session
	if !sess.Active() || input.RoomID != sess.RoomID {
		gs.mu.Unlock()
		return nil
	}

	now := s.clock.Now()
	var credit int64
	creditUser := false

	if input.Joined {
		if _, ok := sess.Participants[input.UserID]; !ok {
			sess.Participants[input.UserID] = now
		}
	} else if joinedAt, ok := sess.Participants[input.UserID]; ok {
		// A member who leaves is credited immediately; rejoining starts
		// a fresh accrual baseline
		credit = accruedSeconds(sess.StartedAt, joinedAt, now)
		creditUser = true
		delete(sess.Participants, input.UserID)
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: sess}); err != nil {
		log.Printf("failed to save session %s: %v", sess.ID, err)
	}

	occupants := s.listOccupants(ctx, input.GuildID, sess.RoomID)
	toMute, toUnmute := gs.mute.Evaluate(gs.enforcing(), occupants)
	gs.mu.Unlock()

	if creditUser {
		_, err := s.ledgerRepo.Credit(ctx, &ledgerRepo.CreditInput{
			GuildID: input.GuildID,
			UserID:  input.UserID,
			Seconds: credit,
			At:      now,
		})
		if err != nil {
			log.Printf("failed to credit %ds to %s in guild %s: %v", credit, input.UserID, input.GuildID, err)
		}
	}

	s.applyMuteChanges(ctx, gs, input.GuildID, toMute, toUnmute)
	return nil
}

// listOccupants fetches the room occupancy, treating adapter failures as
// an empty snapshot; the next occupancy event recomputes everything
func (s *service) listOccupants(ctx context.Context, guildID, roomID string) []string {
	output, err := s.voice.ListOccupants(ctx, &voice.ListOccupantsInput{
		GuildID: guildID,
		RoomID:  roomID,
	})
	if err != nil {
		log.Printf("failed to list occupants of %s in guild %s: %v", roomID, guildID, err)
		return nil
	}
	return output.UserIDs
}

// applyMuteChanges issues the adapter calls for a computed decision set.
// Only successful calls are acknowledged to the policy, so a failed call
// shows up again in the next evaluation.
func (s *service) applyMuteChanges(ctx context.Context, gs *guildState, guildID string, toMute, toUnmute []string) {
	for _, userID := range toMute {
		err := s.voice.SetMuted(ctx, &voice.SetMutedInput{
			GuildID: guildID,
			UserID:  userID,
			Muted:   true,
		})
		if err != nil {
			log.Printf("failed to mute %s in guild %s: %v", userID, guildID, err)
			continue
		}

		gs.mu.Lock()
		if gs.mute != nil {
			gs.mute.MarkMuted(userID)
		}
		gs.mu.Unlock()
	}

	for _, userID := range toUnmute {
		err := s.voice.SetMuted(ctx, &voice.SetMutedInput{
			GuildID: guildID,
			UserID:  userID,
			Muted:   false,
		})
		if err != nil {
			log.Printf("failed to unmute %s in guild %s: %v", userID, guildID, err)
			continue
		}

		gs.mu.Lock()
		if gs.mute != nil {
			gs.mute.MarkUnmuted(userID)
		}
		gs.mu.Unlock()
	}
}

// accruedSeconds computes a participant's study time between joining and
// the flush instant, clamped to zero
func accruedSeconds(sessionStart, joinedAt, until time.Time) int64 {
	from := sessionStart
	if joinedAt.After(from) {
		from = joinedAt
	}

	seconds := int64(until.Sub(from).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// noopNotifier discards lifecycle notifications
type noopNotifier struct{}

func (noopNotifier) SessionStarted(*SessionStartedNote)      {}
func (noopNotifier) SessionEnded(*SessionEndedNote)          {}
func (noopNotifier) PomodoroPhaseChanged(*PomodoroPhaseNote) {}
