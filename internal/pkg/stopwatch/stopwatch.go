// Package stopwatch tracks elapsed work time for the "start/stop work"
// feature. It is ephemeral by design: nothing here is persisted or treated as
// a source of truth for worked hours. Stopping a watch only yields a proposed
// hours value that the caller may pre-fill into an entry creation request.
package stopwatch

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("a stopwatch is already running for this employee")
	ErrNotRunning     = errors.New("no running stopwatch for this employee")
)

// Tracker holds at most one running stopwatch per employee. State lives only
// in process memory and is lost on restart, which is acceptable: the employee
// simply types the hours instead.
type Tracker struct {
	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Start begins tracking for an employee.
func (t *Tracker) Start(employeeID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.started[employeeID]; ok {
		return ErrAlreadyRunning
	}
	t.started[employeeID] = t.now()
	return nil
}

// Elapsed returns how long the employee's stopwatch has been running.
func (t *Tracker) Elapsed(employeeID string) (time.Duration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.started[employeeID]
	if !ok {
		return 0, ErrNotRunning
	}
	return t.now().Sub(start), nil
}

// Stop ends tracking and returns the elapsed time as a proposed hours value.
func (t *Tracker) Stop(employeeID string) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.started[employeeID]
	if !ok {
		return 0, ErrNotRunning
	}
	delete(t.started, employeeID)
	return t.now().Sub(start).Hours(), nil
}

// Discard drops a running stopwatch without producing a value.
func (t *Tracker) Discard(employeeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.started, employeeID)
}
