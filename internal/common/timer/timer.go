package timer

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_scheduler.go github.com/wrenware/studyhall/internal/common/timer Scheduler,Handle

// Handle controls a scheduled callback
type Handle interface {
	// Stop cancels the callback. It returns false if the callback has
	// already fired or been stopped.
	Stop() bool
}

// Scheduler arms single-shot callbacks. It exists so timer-driven code
// can be tested with a controllable implementation.
type Scheduler interface {
	// AfterFunc runs fn in its own goroutine after d has elapsed
	AfterFunc(d time.Duration, fn func()) Handle
}

// DefaultScheduler implements the Scheduler interface using time.AfterFunc
type DefaultScheduler struct{}

// AfterFunc arms a real timer for fn
func (s *DefaultScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Stop() bool {
	return h.timer.Stop()
}
