package timesheet

import (
	"time"

	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
)

type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusSubmitted EntryStatus = "submitted"
	StatusApproved  EntryStatus = "approved"
	StatusRejected  EntryStatus = "rejected"
)

// MinDescriptionLength is the minimum description length required before an
// entry may leave draft.
const MinDescriptionLength = 10

// MaxHoursPerEntry bounds hours_worked to a single day.
const MaxHoursPerEntry = 24.0

// Entry is a single timesheet record. WorkDate is a calendar key, never a
// timestamp: converting to an instant and back shifts the date by a day for
// callers outside the server's zone.
type Entry struct {
	ID       string
	TenantID string
	OwnerID  string

	WorkDate    dateutil.DateKey
	ProjectID   *string
	TaskID      *string
	HoursWorked float64
	Description string

	IsBillable    bool
	BillingRate   *float64
	BillingAmount *float64

	ActivityType string
	WorkType     string

	Status         EntryStatus
	ApprovedAt     *time.Time
	ApprovedBy     *string
	IsAutoApproved bool

	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses
	ProjectName *string
	TaskName    *string
}

// Editable reports whether the owner may still mutate or delete the entry.
func (e *Entry) Editable() bool {
	return e.Status == StatusDraft || e.Status == StatusRejected
}

// EnsureEditable guards direct field mutation against submitted/approved rows.
func (e *Entry) EnsureEditable() error {
	if !e.Editable() {
		return &StateConflictError{Operation: "edit", Current: e.Status}
	}
	return nil
}

// EnsureDeletable guards deletion; only draft and rejected entries may go.
func (e *Entry) EnsureDeletable() error {
	if !e.Editable() {
		return &StateConflictError{Operation: "delete", Current: e.Status}
	}
	return nil
}

// Submit transitions draft/rejected -> submitted. today is the current
// calendar date in the tenant's zone; allowFuture is the tenant setting for
// future-dated entries. Leaving rejected clears the rejection reason.
func (e *Entry) Submit(today dateutil.DateKey, allowFuture bool) error {
	if e.Status != StatusDraft && e.Status != StatusRejected {
		return &StateConflictError{Operation: "submit", Current: e.Status}
	}

	var errs validator.ValidationErrors
	if !validator.MinRunes(e.Description, MinDescriptionLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at least 10 characters before submission",
		})
	}
	if e.HoursWorked <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_worked",
			Message: "hours worked must be greater than zero",
		})
	}
	if !allowFuture && dateutil.Compare(e.WorkDate, today) > 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "future-dated entries are not allowed for this tenant",
		})
	}
	if len(errs) > 0 {
		return errs
	}

	e.Status = StatusSubmitted
	e.RejectionReason = nil
	return nil
}

// Approve records the external reviewer outcome. Approved is terminal.
func (e *Entry) Approve(reviewerID string, at time.Time, auto bool) error {
	if e.Status != StatusSubmitted {
		return &StateConflictError{Operation: "approve", Current: e.Status}
	}
	e.Status = StatusApproved
	e.ApprovedBy = &reviewerID
	e.ApprovedAt = &at
	e.IsAutoApproved = auto
	return nil
}

// Reject records the external reviewer outcome with a mandatory reason.
func (e *Entry) Reject(reason string) error {
	if e.Status != StatusSubmitted {
		return &StateConflictError{Operation: "reject", Current: e.Status}
	}
	e.Status = StatusRejected
	e.RejectionReason = &reason
	return nil
}

// Reopen reverts submitted -> draft, the only employee-initiated backward
// transition. Nothing besides status changes.
func (e *Entry) Reopen() error {
	if e.Status != StatusSubmitted {
		return &StateConflictError{Operation: "reopen", Current: e.Status}
	}
	e.Status = StatusDraft
	return nil
}

// Week returns the Monday of the ISO week the entry belongs to.
func (e *Entry) Week() dateutil.DateKey {
	return dateutil.StartOfISOWeek(e.WorkDate)
}
