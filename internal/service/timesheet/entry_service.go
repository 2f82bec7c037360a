package timesheet

import (
	"fmt"
	"log/slog"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/project"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/tenant"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
)

type EntryService struct {
	entryRepo   timesheet.EntryRepository
	tenantRepo  tenant.TenantRepository
	projectRepo project.ProjectRepository
	calculator  *WeeklyCalculator
	now         func() time.Time
}

func NewEntryService(entryRepo timesheet.EntryRepository, tenantRepo tenant.TenantRepository, projectRepo project.ProjectRepository) *EntryService {
	return &EntryService{
		entryRepo:   entryRepo,
		tenantRepo:  tenantRepo,
		projectRepo: projectRepo,
		calculator:  NewWeeklyCalculator(),
		now:         time.Now,
	}
}

// tenantToday resolves "today" in the tenant's calendar together with the
// future-dated-entries flag.
func (s *EntryService) tenantToday(ctx context.Context, tenantID string) (dateutil.DateKey, bool, error) {
	t, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return "", false, fmt.Errorf("failed to get tenant: %w", err)
	}

	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		slog.Warn("invalid tenant timezone, falling back to UTC", "tenant_id", tenantID, "timezone", t.Timezone)
		loc = time.UTC
	}

	return dateutil.ToDateKey(s.now(), loc), t.AllowFutureEntries, nil
}

func (s *EntryService) CreateEntry(ctx context.Context, req timesheet.CreateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	workDate, err := dateutil.Parse(req.WorkDate)
	if err != nil {
		return timesheet.EntryResponse{}, validator.ValidationErrors{{
			Field:   "work_date",
			Message: "work_date must be a calendar date in YYYY-MM-DD form",
		}}
	}

	today, allowFuture, err := s.tenantToday(ctx, req.TenantID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	if !allowFuture && dateutil.Compare(workDate, today) > 0 {
		return timesheet.EntryResponse{}, validator.ValidationErrors{{
			Field:   "work_date",
			Message: "future-dated entries are not allowed for this tenant",
		}}
	}

	if req.ProjectID != nil {
		ok, err := s.projectRepo.Exists(ctx, req.TenantID, *req.ProjectID, req.TaskID)
		if err != nil {
			return timesheet.EntryResponse{}, fmt.Errorf("failed to check project reference: %w", err)
		}
		if !ok {
			return timesheet.EntryResponse{}, project.ErrProjectNotFound
		}
	}

	// A fully locked week blocks new entries; a rejection reopens it.
	weekEntries, err := s.entryRepo.ListByOwnerWeek(ctx, req.TenantID, req.OwnerID, dateutil.StartOfISOWeek(workDate))
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to list week entries: %w", err)
	}
	if view := s.calculator.Build(dateutil.StartOfISOWeek(workDate), weekEntries); !view.CanAddEntries {
		return timesheet.EntryResponse{}, timesheet.ErrWeekLocked
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to generate entry id: %w", err)
	}

	entry := timesheet.Entry{
		ID:           id.String(),
		TenantID:     req.TenantID,
		OwnerID:      req.OwnerID,
		WorkDate:     workDate,
		ProjectID:    req.ProjectID,
		TaskID:       req.TaskID,
		HoursWorked:  req.HoursWorked,
		Description:  req.Description,
		IsBillable:   req.IsBillable,
		ActivityType: req.ActivityType,
		WorkType:     req.WorkType,
		Status:       timesheet.StatusDraft,
	}

	created, err := s.entryRepo.Create(ctx, entry)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return timesheet.NewEntryResponse(created), nil
}

// getOwnedEntry loads an entry and hides other owners' rows behind not-found.
func (s *EntryService) getOwnedEntry(ctx context.Context, id, tenantID, ownerID string) (timesheet.Entry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return timesheet.Entry{}, err
	}
	if entry.OwnerID != ownerID {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	return entry, nil
}

func (s *EntryService) UpdateEntry(ctx context.Context, req timesheet.UpdateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.getOwnedEntry(ctx, req.ID, req.TenantID, req.OwnerID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	if err := entry.EnsureEditable(); err != nil {
		return timesheet.EntryResponse{}, err
	}
	expectStatus := entry.Status

	if req.WorkDate != nil {
		workDate, err := dateutil.Parse(*req.WorkDate)
		if err != nil {
			return timesheet.EntryResponse{}, validator.ValidationErrors{{
				Field:   "work_date",
				Message: "work_date must be a calendar date in YYYY-MM-DD form",
			}}
		}

		today, allowFuture, err := s.tenantToday(ctx, req.TenantID)
		if err != nil {
			return timesheet.EntryResponse{}, err
		}
		if !allowFuture && dateutil.Compare(workDate, today) > 0 {
			return timesheet.EntryResponse{}, validator.ValidationErrors{{
				Field:   "work_date",
				Message: "future-dated entries are not allowed for this tenant",
			}}
		}
		entry.WorkDate = workDate
	}

	if req.ProjectID != nil {
		ok, err := s.projectRepo.Exists(ctx, req.TenantID, *req.ProjectID, req.TaskID)
		if err != nil {
			return timesheet.EntryResponse{}, fmt.Errorf("failed to check project reference: %w", err)
		}
		if !ok {
			return timesheet.EntryResponse{}, project.ErrProjectNotFound
		}
		entry.ProjectID = req.ProjectID
		entry.TaskID = req.TaskID
	}

	if req.HoursWorked != nil {
		entry.HoursWorked = *req.HoursWorked
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.IsBillable != nil {
		entry.IsBillable = *req.IsBillable
	}
	if req.ActivityType != nil {
		entry.ActivityType = *req.ActivityType
	}
	if req.WorkType != nil {
		entry.WorkType = *req.WorkType
	}

	updated, err := s.entryRepo.Update(ctx, entry, expectStatus)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to update entry: %w", err)
	}
	if !updated {
		return timesheet.EntryResponse{}, s.conflict(ctx, "edit", req.ID, req.TenantID)
	}

	return timesheet.NewEntryResponse(entry), nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, id, tenantID, ownerID string) error {
	entry, err := s.getOwnedEntry(ctx, id, tenantID, ownerID)
	if err != nil {
		return err
	}
	if err := entry.EnsureDeletable(); err != nil {
		return err
	}

	deleted, err := s.entryRepo.Delete(ctx, id, tenantID, []timesheet.EntryStatus{timesheet.StatusDraft, timesheet.StatusRejected})
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if !deleted {
		return s.conflict(ctx, "delete", id, tenantID)
	}
	return nil
}

func (s *EntryService) ReopenEntry(ctx context.Context, id, tenantID, ownerID string) (timesheet.EntryResponse, error) {
	entry, err := s.getOwnedEntry(ctx, id, tenantID, ownerID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	if err := entry.Reopen(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	ok, err := s.entryRepo.UpdateStatus(ctx, entry, timesheet.StatusSubmitted)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to reopen entry: %w", err)
	}
	if !ok {
		return timesheet.EntryResponse{}, s.conflict(ctx, "reopen", id, tenantID)
	}

	return timesheet.NewEntryResponse(entry), nil
}

func (s *EntryService) ApproveEntry(ctx context.Context, req timesheet.ApproveEntryRequest) (timesheet.EntryResponse, error) {
	entry, err := s.entryRepo.GetByID(ctx, req.EntryID, req.TenantID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	if err := entry.Approve(req.ReviewerID, s.now(), req.IsAutoApproved); err != nil {
		return timesheet.EntryResponse{}, err
	}

	ok, err := s.entryRepo.UpdateStatus(ctx, entry, timesheet.StatusSubmitted)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to approve entry: %w", err)
	}
	if !ok {
		return timesheet.EntryResponse{}, s.conflict(ctx, "approve", req.EntryID, req.TenantID)
	}

	return timesheet.NewEntryResponse(entry), nil
}

func (s *EntryService) RejectEntry(ctx context.Context, req timesheet.RejectEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.entryRepo.GetByID(ctx, req.EntryID, req.TenantID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	if err := entry.Reject(req.Reason); err != nil {
		return timesheet.EntryResponse{}, err
	}

	ok, err := s.entryRepo.UpdateStatus(ctx, entry, timesheet.StatusSubmitted)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to reject entry: %w", err)
	}
	if !ok {
		return timesheet.EntryResponse{}, s.conflict(ctx, "reject", req.EntryID, req.TenantID)
	}

	return timesheet.NewEntryResponse(entry), nil
}

func (s *EntryService) ListMyEntries(ctx context.Context, tenantID, ownerID string, filter timesheet.EntryFilter) (timesheet.ListEntriesResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	entries, total, err := s.entryRepo.ListByOwner(ctx, tenantID, ownerID, filter)
	if err != nil {
		return timesheet.ListEntriesResponse{}, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := timesheet.ListEntriesResponse{
		Entries:    make([]timesheet.EntryResponse, 0, len(entries)),
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, timesheet.NewEntryResponse(e))
	}
	return resp, nil
}

// conflict reports a lost optimistic write with the row's current status so
// the stale client can re-sync.
func (s *EntryService) conflict(ctx context.Context, operation, id, tenantID string) error {
	current, err := s.entryRepo.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	return &timesheet.StateConflictError{Operation: operation, Current: current.Status}
}
