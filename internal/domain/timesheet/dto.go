package timesheet

import (
	"time"

	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/timecalc"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// ENTRY DTOs
// ========================================

// CreateEntryRequest carries the fields for a new draft entry. Hours can be
// given directly or derived from a start/end/break triple; an explicit value
// wins. Owner and tenant come from the identity context, never the body.
type CreateEntryRequest struct {
	OwnerID  string `json:"-"`
	TenantID string `json:"-"`

	WorkDate    string  `json:"work_date"`
	ProjectID   *string `json:"project_id,omitempty"`
	TaskID      *string `json:"task_id,omitempty"`
	HoursWorked float64 `json:"hours_worked"`
	Description string  `json:"description"`

	StartTime  *string  `json:"start_time,omitempty"`
	EndTime    *string  `json:"end_time,omitempty"`
	BreakHours *float64 `json:"break_hours,omitempty"`

	IsBillable   bool   `json:"is_billable"`
	ActivityType string `json:"activity_type"`
	WorkType     string `json:"work_type"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OwnerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "owner_id",
			Message: "owner identity is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be a calendar date in YYYY-MM-DD form",
		})
	}

	if r.StartTime != nil || r.EndTime != nil {
		if r.StartTime == nil || r.EndTime == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time and end_time must be provided together",
			})
		} else if r.HoursWorked == 0 {
			start, startErr := timecalc.ParseTimeOfDay(*r.StartTime)
			end, endErr := timecalc.ParseTimeOfDay(*r.EndTime)
			switch {
			case startErr != nil:
				errs = append(errs, validator.ValidationError{
					Field:   "start_time",
					Message: "start_time must be HH:MM",
				})
			case endErr != nil:
				errs = append(errs, validator.ValidationError{
					Field:   "end_time",
					Message: "end_time must be HH:MM",
				})
			default:
				var breakHours float64
				if r.BreakHours != nil {
					breakHours = *r.BreakHours
				}
				r.HoursWorked = timecalc.ComputeHours(start, end, breakHours)
			}
		}
	}

	if r.HoursWorked <= 0 || r.HoursWorked > MaxHoursPerEntry {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_worked",
			Message: "hours_worked must be greater than 0 and at most 24",
		})
	}

	if r.TaskID != nil && r.ProjectID == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "task_id",
			Message: "task_id is only meaningful together with project_id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEntryRequest mutates an owner's draft or rejected entry. Nil fields
// are left unchanged.
type UpdateEntryRequest struct {
	ID       string `json:"-"`
	OwnerID  string `json:"-"`
	TenantID string `json:"-"`

	WorkDate     *string  `json:"work_date,omitempty"`
	ProjectID    *string  `json:"project_id,omitempty"`
	TaskID       *string  `json:"task_id,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	Description  *string  `json:"description,omitempty"`
	IsBillable   *bool    `json:"is_billable,omitempty"`
	ActivityType *string  `json:"activity_type,omitempty"`
	WorkType     *string  `json:"work_type,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkDate != nil {
		if _, ok := validator.IsValidDate(*r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "work_date",
				Message: "work_date must be a calendar date in YYYY-MM-DD form",
			})
		}
	}

	if r.HoursWorked != nil && (*r.HoursWorked <= 0 || *r.HoursWorked > MaxHoursPerEntry) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_worked",
			Message: "hours_worked must be greater than 0 and at most 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitWeekRequest submits a week, or a selected subset of it. EntryIDs nil
// means every draft and rejected entry in the week.
type SubmitWeekRequest struct {
	OwnerID  string `json:"-"`
	TenantID string `json:"-"`

	WeekStart string   `json:"week_start"`
	EntryIDs  []string `json:"entry_ids,omitempty"`
}

func (r *SubmitWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	key, ok := validator.IsValidDate(r.WeekStart)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a calendar date in YYYY-MM-DD form",
		})
	} else if key.Weekday() != time.Monday {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a Monday",
		})
	}

	for _, id := range r.EntryIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "entry_ids." + id,
				Message: "must be a valid entry id",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApproveEntryRequest records the external reviewer's approval.
type ApproveEntryRequest struct {
	EntryID    string `json:"-"`
	TenantID   string `json:"-"`
	ReviewerID string `json:"-"`

	IsAutoApproved bool `json:"is_auto_approved,omitempty"`
}

// RejectEntryRequest records the external reviewer's rejection.
type RejectEntryRequest struct {
	EntryID    string `json:"-"`
	TenantID   string `json:"-"`
	ReviewerID string `json:"-"`

	Reason string `json:"reason"`
}

func (r *RejectEntryRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a rejection reason is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EntryFilter narrows an owner's entry listing.
type EntryFilter struct {
	DateFrom *dateutil.DateKey
	DateTo   *dateutil.DateKey
	Status   *EntryStatus
	Page     int
	Limit    int
}

// ========================================
// RESPONSES
// ========================================

type EntryResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	WorkDate    string  `json:"work_date"`
	ProjectID   *string `json:"project_id,omitempty"`
	ProjectName *string `json:"project_name,omitempty"`
	TaskID      *string `json:"task_id,omitempty"`
	TaskName    *string `json:"task_name,omitempty"`

	HoursWorked float64 `json:"hours_worked"`
	Description string  `json:"description"`

	IsBillable    bool     `json:"is_billable"`
	BillingRate   *float64 `json:"billing_rate,omitempty"`
	BillingAmount *float64 `json:"billing_amount,omitempty"`

	ActivityType string `json:"activity_type,omitempty"`
	WorkType     string `json:"work_type,omitempty"`

	Status          string     `json:"status"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	IsAutoApproved  bool       `json:"is_auto_approved,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:              e.ID,
		OwnerID:         e.OwnerID,
		WorkDate:        e.WorkDate.String(),
		ProjectID:       e.ProjectID,
		ProjectName:     e.ProjectName,
		TaskID:          e.TaskID,
		TaskName:        e.TaskName,
		HoursWorked:     e.HoursWorked,
		Description:     e.Description,
		IsBillable:      e.IsBillable,
		BillingRate:     e.BillingRate,
		BillingAmount:   e.BillingAmount,
		ActivityType:    e.ActivityType,
		WorkType:        e.WorkType,
		Status:          string(e.Status),
		ApprovedAt:      e.ApprovedAt,
		ApprovedBy:      e.ApprovedBy,
		IsAutoApproved:  e.IsAutoApproved,
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

type ListEntriesResponse struct {
	Entries    []EntryResponse `json:"entries"`
	TotalItems int64           `json:"total_items"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
