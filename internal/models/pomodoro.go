package models

import (
	"time"
)

// PomodoroPhase represents the current phase of a pomodoro cycle
type PomodoroPhase string

const (
	// PomodoroPhaseFocus indicates a focus phase is running
	PomodoroPhaseFocus PomodoroPhase = "focus"

	// PomodoroPhaseBreak indicates a break phase is running
	PomodoroPhaseBreak PomodoroPhase = "break"

	// PomodoroPhaseStopped indicates the cycle has been stopped
	PomodoroPhaseStopped PomodoroPhase = "stopped"
)

const (
	// DefaultFocusDuration is the focus phase length when none is given
	DefaultFocusDuration = 25 * time.Minute

	// DefaultBreakDuration is the break phase length when none is given
	DefaultBreakDuration = 5 * time.Minute
)

// PomodoroCycle represents the focus/break alternator nested inside an
// active session. It exists only while its owning session is active and
// pomodoro mode is on.
type PomodoroCycle struct {
	// Phase is the phase currently running
	Phase PomodoroPhase

	// FocusDuration is the length of each focus phase
	FocusDuration time.Duration

	// BreakDuration is the length of each break phase
	BreakDuration time.Duration

	// PhaseStartedAt is when the current phase was entered
	PhaseStartedAt time.Time

	// CycleIndex counts completed focus phases
	CycleIndex int
}
