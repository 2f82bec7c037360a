package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrEntryNotFound = errors.New("timesheet entry not found")
	ErrWeekLocked    = errors.New("week is locked for new entries")
	ErrWeekEmpty     = errors.New("no entries to submit for this week")
)

// StateConflictError is returned when a transition is illegal from the
// entry's current status, or when a concurrent writer got there first. It
// carries the current status so a stale client can re-sync.
type StateConflictError struct {
	Operation string
	Current   EntryStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s entry in status %q", e.Operation, e.Current)
}

// IsStateConflict unwraps err into a StateConflictError if it is one.
func IsStateConflict(err error) (*StateConflictError, bool) {
	var sc *StateConflictError
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}
