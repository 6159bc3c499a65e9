package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/wrenware/studyhall/internal/common/clock/mocks"
	"github.com/wrenware/studyhall/internal/common/timer"
	uuidMocks "github.com/wrenware/studyhall/internal/common/uuid/mocks"
	"github.com/wrenware/studyhall/internal/models"
	"github.com/wrenware/studyhall/internal/platform/voice"
	voiceMocks "github.com/wrenware/studyhall/internal/platform/voice/mocks"
	guildRepo "github.com/wrenware/studyhall/internal/repositories/guild"
	guildMocks "github.com/wrenware/studyhall/internal/repositories/guild/mocks"
	ledgerRepo "github.com/wrenware/studyhall/internal/repositories/ledger"
	ledgerMocks "github.com/wrenware/studyhall/internal/repositories/ledger/mocks"
	sessionRepo "github.com/wrenware/studyhall/internal/repositories/session"
	sessionMocks "github.com/wrenware/studyhall/internal/repositories/session/mocks"
)

// fakeScheduler implements timer.Scheduler with manually fired tasks so
// tests control when phase timers elapse
type fakeScheduler struct {
	tasks []*fakeTask
}

type fakeTask struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (f *fakeScheduler) AfterFunc(d time.Duration, fn func()) timer.Handle {
	task := &fakeTask{d: d, fn: fn}
	f.tasks = append(f.tasks, task)
	return task
}

func (t *fakeTask) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fire invokes the callback unconditionally, mimicking a timer callback
// already in flight when Stop was called
func (t *fakeTask) fire() {
	t.fn()
}

// recordingNotifier captures lifecycle notifications
type recordingNotifier struct {
	started []*SessionStartedNote
	ended   []*SessionEndedNote
	phases  []*PomodoroPhaseNote
}

func (n *recordingNotifier) SessionStarted(note *SessionStartedNote) {
	n.started = append(n.started, note)
}

func (n *recordingNotifier) SessionEnded(note *SessionEndedNote) {
	n.ended = append(n.ended, note)
}

func (n *recordingNotifier) PomodoroPhaseChanged(note *PomodoroPhaseNote) {
	n.phases = append(n.phases, note)
}

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockGuildRepo   *guildMocks.MockRepository
	mockSessionRepo *sessionMocks.MockRepository
	mockLedgerRepo  *ledgerMocks.MockRepository
	mockVoice       *voiceMocks.MockAdapter
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	scheduler       *fakeScheduler
	notifier        *recordingNotifier
	service         Service
	ctx             context.Context

	// Test data
	testStart     time.Time
	testGuildID   string
	testRoomID    string
	testChannelID string
	testSessionID string
	testUserA     string
	testUserB     string
	testConfig    *models.GuildConfig
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGuildRepo = guildMocks.NewMockRepository(s.mockCtrl)
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockLedgerRepo = ledgerMocks.NewMockRepository(s.mockCtrl)
	s.mockVoice = voiceMocks.NewMockAdapter(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.scheduler = &fakeScheduler{}
	s.notifier = &recordingNotifier{}

	s.ctx = context.Background()

	// Initialize test data
	s.testStart = time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	s.testGuildID = "test-guild-id"
	s.testRoomID = "test-room-id"
	s.testChannelID = "test-channel-id"
	s.testSessionID = "test-session-id"
	s.testUserA = "user-a"
	s.testUserB = "user-b"
	s.testConfig = &models.GuildConfig{
		GuildID:     s.testGuildID,
		StudyRoomID: s.testRoomID,
	}

	// History writes are not what these tests assert on
	s.mockSessionRepo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	service, err := New(&Config{
		GuildRepo:     s.mockGuildRepo,
		SessionRepo:   s.mockSessionRepo,
		LedgerRepo:    s.mockLedgerRepo,
		Voice:         s.mockVoice,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Scheduler:     s.scheduler,
		Notifier:      s.notifier,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

// expectConfig arms one GetConfig call returning the standard room config
func (s *SessionServiceTestSuite) expectConfig() {
	s.mockGuildRepo.EXPECT().GetConfig(gomock.Any(), gomock.Any()).Return(&guildRepo.GetConfigOutput{
		Config: s.testConfig,
	}, nil)
}

// expectOccupants arms one ListOccupants call
func (s *SessionServiceTestSuite) expectOccupants(userIDs ...string) {
	s.mockVoice.EXPECT().ListOccupants(gomock.Any(), gomock.Any()).Return(&voice.ListOccupantsOutput{
		UserIDs: userIDs,
	}, nil)
}

// expectMute arms one SetMuted call
func (s *SessionServiceTestSuite) expectMute(userID string, muted bool) {
	s.mockVoice.EXPECT().SetMuted(gomock.Any(), &voice.SetMutedInput{
		GuildID: s.testGuildID,
		UserID:  userID,
		Muted:   muted,
	}).Return(nil)
}

// expectCredit arms one Credit call for an exact user and amount
func (s *SessionServiceTestSuite) expectCredit(userID string, seconds int64, at time.Time) {
	s.mockLedgerRepo.EXPECT().Credit(gomock.Any(), gomock.Cond(func(x any) bool {
		input := x.(*ledgerRepo.CreditInput)
		return input.GuildID == s.testGuildID &&
			input.UserID == userID &&
			input.Seconds == seconds &&
			input.At.Equal(at)
	})).Return(&ledgerRepo.CreditOutput{}, nil)
}

// startSession boots an active session with the given room occupants
func (s *SessionServiceTestSuite) startSession(occupants ...string) {
	s.expectConfig()
	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockClock.EXPECT().Now().Return(s.testStart)
	s.expectOccupants(occupants...)
	for _, userID := range occupants {
		s.expectMute(userID, true)
	}

	output, err := s.service.StartSession(s.ctx, &StartSessionInput{
		GuildID:   s.testGuildID,
		ChannelID: s.testChannelID,
		StartedBy: s.testUserA,
	})
	s.Require().NoError(err)
	s.Require().Equal(s.testSessionID, output.SessionID)
	s.Require().Equal(s.testRoomID, output.RoomID)
}

func (s *SessionServiceTestSuite) TestStartSessionNoRoomConfigured() {
	s.mockGuildRepo.EXPECT().GetConfig(gomock.Any(), gomock.Any()).Return(nil, guildRepo.ErrConfigNotFound)

	_, err := s.service.StartSession(s.ctx, &StartSessionInput{
		GuildID: s.testGuildID,
	})
	s.Require().ErrorIs(err, ErrNoRoomConfigured)
}

func (s *SessionServiceTestSuite) TestStartSessionAlreadyActive() {
	s.startSession()

	s.expectConfig()
	_, err := s.service.StartSession(s.ctx, &StartSessionInput{
		GuildID: s.testGuildID,
	})
	s.Require().ErrorIs(err, ErrAlreadyActive)
}

func (s *SessionServiceTestSuite) TestStartSessionMutesOccupants() {
	s.startSession(s.testUserA, s.testUserB)

	s.Require().Len(s.notifier.started, 1)
	s.Equal(s.testSessionID, s.notifier.started[0].SessionID)
	s.Equal(s.testChannelID, s.notifier.started[0].ChannelID)
}

func (s *SessionServiceTestSuite) TestJoinSessionNotActive() {
	_, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserA,
	})
	s.Require().ErrorIs(err, ErrNotActive)
}

func (s *SessionServiceTestSuite) TestJoinSessionIdempotent() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart.Add(5 * time.Minute))
	first, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserA,
	})
	s.Require().NoError(err)
	s.False(first.AlreadyJoined)

	// A repeat join does not reset the join time: the eventual credit
	// still counts from the first join
	second, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserA,
	})
	s.Require().NoError(err)
	s.True(second.AlreadyJoined)

	s.mockClock.EXPECT().Now().Return(s.testStart.Add(30 * time.Minute))
	s.expectCredit(s.testUserA, 25*60, s.testStart.Add(30*time.Minute))
	_, err = s.service.EndSession(s.ctx, &EndSessionInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestJoinSessionMovesMember() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart.Add(time.Minute))
	s.mockVoice.EXPECT().MoveMember(gomock.Any(), &voice.MoveMemberInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserA,
		RoomID:  s.testRoomID,
	}).Return(nil)

	output, err := s.service.JoinSession(s.ctx, &JoinSessionInput{
		GuildID:    s.testGuildID,
		UserID:     s.testUserA,
		MoveToRoom: true,
	})
	s.Require().NoError(err)
	s.Equal(s.testRoomID, output.RoomID)
}

func (s *SessionServiceTestSuite) TestEndSessionNotActive() {
	_, err := s.service.EndSession(s.ctx, &EndSessionInput{
		GuildID: s.testGuildID,
	})
	s.Require().ErrorIs(err, ErrNotActive)
}

func (s *SessionServiceTestSuite) TestEndSessionCreditsParticipants() {
	// A is in the room when the session starts at T0, B joins at T0+10m,
	// the session ends at T0+30m: A is credited 30m, B 20m
	s.startSession(s.testUserA)

	s.mockClock.EXPECT().Now().Return(s.testStart.Add(10 * time.Minute))
	s.expectOccupants(s.testUserA, s.testUserB)
	s.expectMute(s.testUserB, true)
	err := s.service.HandleRoomEvent(s.ctx, &HandleRoomEventInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserB,
		RoomID:  s.testRoomID,
		Joined:  true,
	})
	s.Require().NoError(err)

	endAt := s.testStart.Add(30 * time.Minute)
	s.mockClock.EXPECT().Now().Return(endAt)
	s.expectCredit(s.testUserA, 30*60, endAt)
	s.expectCredit(s.testUserB, 20*60, endAt)
	s.expectMute(s.testUserA, false)
	s.expectMute(s.testUserB, false)

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal(30*time.Minute, output.Duration)
	s.Equal(2, output.Participants)

	s.Require().Len(s.notifier.ended, 1)
	s.Equal(30*time.Minute, s.notifier.ended[0].Duration)
}

func (s *SessionServiceTestSuite) TestEndThenStartProducesNewSession() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart.Add(time.Hour))
	_, err := s.service.EndSession(s.ctx, &EndSessionInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	s.expectConfig()
	s.mockUUID.EXPECT().NewUUID().Return("second-session-id")
	s.mockClock.EXPECT().Now().Return(s.testStart.Add(2 * time.Hour))
	s.expectOccupants()

	output, err := s.service.StartSession(s.ctx, &StartSessionInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal("second-session-id", output.SessionID)
}

func (s *SessionServiceTestSuite) TestRoomLeaveCreditsAndReleases() {
	s.startSession(s.testUserA)

	leaveAt := s.testStart.Add(10 * time.Minute)
	s.mockClock.EXPECT().Now().Return(leaveAt)
	s.expectOccupants()
	s.expectCredit(s.testUserA, 10*60, leaveAt)
	s.expectMute(s.testUserA, false)

	err := s.service.HandleRoomEvent(s.ctx, &HandleRoomEventInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserA,
		RoomID:  s.testRoomID,
		Joined:  false,
	})
	s.Require().NoError(err)

	// The session keeps running; ending credits only remaining members
	s.mockClock.EXPECT().Now().Return(s.testStart.Add(30 * time.Minute))
	output, err := s.service.EndSession(s.ctx, &EndSessionInput{GuildID: s.testGuildID})
	s.Require().NoError(err)
	s.Equal(0, output.Participants)
}

func (s *SessionServiceTestSuite) TestRoomEventIgnoredWhenIdle() {
	err := s.service.HandleRoomEvent(s.ctx, &HandleRoomEventInput{
		GuildID: s.testGuildID,
		UserID:  s.testUserA,
		RoomID:  s.testRoomID,
		Joined:  true,
	})
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestStartPomodoroNotActive() {
	_, err := s.service.StartPomodoro(s.ctx, &StartPomodoroInput{
		GuildID: s.testGuildID,
	})
	s.Require().ErrorIs(err, ErrNotActive)
}

func (s *SessionServiceTestSuite) TestStartPomodoroDefaults() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart)
	output, err := s.service.StartPomodoro(s.ctx, &StartPomodoroInput{
		GuildID:   s.testGuildID,
		ChannelID: s.testChannelID,
	})
	s.Require().NoError(err)
	s.Equal(models.DefaultFocusDuration, output.FocusDuration)
	s.Equal(models.DefaultBreakDuration, output.BreakDuration)

	s.Require().Len(s.scheduler.tasks, 1)
	s.Equal(models.DefaultFocusDuration, s.scheduler.tasks[0].d)
}

func (s *SessionServiceTestSuite) TestStartPomodoroAlreadyRunning() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart)
	_, err := s.service.StartPomodoro(s.ctx, &StartPomodoroInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	_, err = s.service.StartPomodoro(s.ctx, &StartPomodoroInput{GuildID: s.testGuildID})
	s.Require().ErrorIs(err, ErrPomodoroRunning)
}

func (s *SessionServiceTestSuite) TestPomodoroPhaseProgression() {
	s.startSession(s.testUserA)

	s.mockClock.EXPECT().Now().Return(s.testStart)
	_, err := s.service.StartPomodoro(s.ctx, &StartPomodoroInput{
		GuildID:       s.testGuildID,
		ChannelID:     s.testChannelID,
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	})
	s.Require().NoError(err)

	s.Require().Len(s.notifier.phases, 1)
	s.Equal(models.PomodoroPhaseFocus, s.notifier.phases[0].Phase)
	s.Equal(0, s.notifier.phases[0].CycleIndex)

	// Focus completes: phase becomes break, one focus cycle is done, and
	// the break lifts the mute
	s.mockClock.EXPECT().Now().Return(s.testStart.Add(25 * time.Minute))
	s.expectOccupants(s.testUserA)
	s.expectMute(s.testUserA, false)
	s.scheduler.tasks[0].fire()

	s.Require().Len(s.notifier.phases, 2)
	s.Equal(models.PomodoroPhaseBreak, s.notifier.phases[1].Phase)
	s.Equal(1, s.notifier.phases[1].CycleIndex)
	s.Require().Len(s.scheduler.tasks, 2)
	s.Equal(5*time.Minute, s.scheduler.tasks[1].d)

	// Break completes: back to focus, cycle count unchanged until the
	// next focus finishes, mute re-applied
	s.mockClock.EXPECT().Now().Return(s.testStart.Add(30 * time.Minute))
	s.expectOccupants(s.testUserA)
	s.expectMute(s.testUserA, true)
	s.scheduler.tasks[1].fire()

	s.Require().Len(s.notifier.phases, 3)
	s.Equal(models.PomodoroPhaseFocus, s.notifier.phases[2].Phase)
	s.Equal(1, s.notifier.phases[2].CycleIndex)
	s.Require().Len(s.scheduler.tasks, 3)
	s.Equal(25*time.Minute, s.scheduler.tasks[2].d)

	// The second focus completes: cycle count increments again
	s.mockClock.EXPECT().Now().Return(s.testStart.Add(55 * time.Minute))
	s.expectOccupants(s.testUserA)
	s.expectMute(s.testUserA, false)
	s.scheduler.tasks[2].fire()

	s.Require().Len(s.notifier.phases, 4)
	s.Equal(models.PomodoroPhaseBreak, s.notifier.phases[3].Phase)
	s.Equal(2, s.notifier.phases[3].CycleIndex)
}

func (s *SessionServiceTestSuite) TestStopPomodoroNoOp() {
	output, err := s.service.StopPomodoro(s.ctx, &StopPomodoroInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.False(output.Stopped)
}

func (s *SessionServiceTestSuite) TestStopPomodoroWinsTimerRace() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart)
	_, err := s.service.StartPomodoro(s.ctx, &StartPomodoroInput{
		GuildID:   s.testGuildID,
		ChannelID: s.testChannelID,
	})
	s.Require().NoError(err)

	s.expectOccupants()
	output, err := s.service.StopPomodoro(s.ctx, &StopPomodoroInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.True(output.Stopped)

	s.Require().Len(s.notifier.phases, 2)
	s.Equal(models.PomodoroPhaseStopped, s.notifier.phases[1].Phase)

	// The focus timer callback was already in flight when Stop ran; its
	// generation token no longer matches, so no transition is applied
	s.scheduler.tasks[0].fire()

	s.Len(s.notifier.phases, 2)
	s.Len(s.scheduler.tasks, 1)
}

func (s *SessionServiceTestSuite) TestEndSessionStopsPomodoro() {
	s.startSession()

	s.mockClock.EXPECT().Now().Return(s.testStart)
	_, err := s.service.StartPomodoro(s.ctx, &StartPomodoroInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.testStart.Add(time.Hour))
	_, err = s.service.EndSession(s.ctx, &EndSessionInput{GuildID: s.testGuildID})
	s.Require().NoError(err)

	s.True(s.scheduler.tasks[0].stopped)

	// A stale callback after the session ended does nothing
	s.scheduler.tasks[0].fire()
	s.Len(s.scheduler.tasks, 1)
}

func (s *SessionServiceTestSuite) TestGetHistory() {
	sessions := []*models.Session{
		{ID: "newer", GuildID: s.testGuildID},
		{ID: "older", GuildID: s.testGuildID},
	}
	s.mockSessionRepo.EXPECT().ListSessions(gomock.Any(), &sessionRepo.ListSessionsInput{
		GuildID: s.testGuildID,
		Limit:   5,
	}).Return(&sessionRepo.ListSessionsOutput{Sessions: sessions}, nil)

	output, err := s.service.GetHistory(s.ctx, &GetHistoryInput{
		GuildID: s.testGuildID,
		Limit:   5,
	})
	s.Require().NoError(err)
	s.Equal(sessions, output.Sessions)
}

func (s *SessionServiceTestSuite) TestSetupRoomStoresConfig() {
	s.mockGuildRepo.EXPECT().GetConfig(gomock.Any(), gomock.Any()).Return(nil, guildRepo.ErrConfigNotFound)
	s.mockVoice.EXPECT().EnsureRoom(gomock.Any(), &voice.EnsureRoomInput{
		GuildID: s.testGuildID,
	}).Return(&voice.EnsureRoomOutput{
		RoomID:     s.testRoomID,
		CategoryID: "test-category-id",
	}, nil)
	s.mockClock.EXPECT().Now().Return(s.testStart)
	s.mockGuildRepo.EXPECT().SaveConfig(gomock.Any(), gomock.Cond(func(x any) bool {
		input := x.(*guildRepo.SaveConfigInput)
		return input.Config.GuildID == s.testGuildID &&
			input.Config.StudyRoomID == s.testRoomID &&
			input.Config.CategoryID == "test-category-id"
	})).Return(nil)

	output, err := s.service.SetupRoom(s.ctx, &SetupRoomInput{
		GuildID: s.testGuildID,
	})
	s.Require().NoError(err)
	s.Equal(s.testRoomID, output.RoomID)
}
