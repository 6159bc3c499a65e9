package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNoRoomConfigured SessionError = "no study room configured for this guild"
	ErrAlreadyActive    SessionError = "a study session is already active"
	ErrNotActive        SessionError = "no active study session"
	ErrPomodoroRunning  SessionError = "a pomodoro is already running"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilGuildRepo     SessionError = "guild repository cannot be nil"
	ErrNilSessionRepo   SessionError = "session repository cannot be nil"
	ErrNilLedgerRepo    SessionError = "ledger repository cannot be nil"
	ErrNilVoiceAdapter  SessionError = "voice adapter cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
	ErrNilScheduler     SessionError = "scheduler cannot be nil"
)
