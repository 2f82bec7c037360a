package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/tenant"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/database"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
	"github.com/nimbus-hr/timesheet-backend-go/internal/repository/postgresql"
)

// SubmissionService coordinates the batch DRAFT/REJECTED -> SUBMITTED
// transition for a week. The whole target set moves inside one transaction:
// a validation failure or a lost optimistic write rolls everything back.
type SubmissionService struct {
	db         *database.DB
	entryRepo  timesheet.EntryRepository
	tenantRepo tenant.TenantRepository
	calculator *WeeklyCalculator
	now        func() time.Time
}

func NewSubmissionService(db *database.DB, entryRepo timesheet.EntryRepository, tenantRepo tenant.TenantRepository) *SubmissionService {
	return &SubmissionService{
		db:         db,
		entryRepo:  entryRepo,
		tenantRepo: tenantRepo,
		calculator: NewWeeklyCalculator(),
		now:        time.Now,
	}
}

func (s *SubmissionService) SubmitWeek(ctx context.Context, req timesheet.SubmitWeekRequest) (timesheet.SubmissionResult, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SubmissionResult{}, err
	}
	weekStart := dateutil.DateKey(req.WeekStart)

	t, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		return timesheet.SubmissionResult{}, fmt.Errorf("failed to get tenant: %w", err)
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		loc = time.UTC
	}
	today := dateutil.ToDateKey(s.now(), loc)

	var submitted int
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		weekEntries, err := s.entryRepo.ListByOwnerWeek(txCtx, req.TenantID, req.OwnerID, weekStart)
		if err != nil {
			return fmt.Errorf("failed to list week entries: %w", err)
		}
		if len(weekEntries) == 0 {
			return timesheet.ErrWeekEmpty
		}

		targets, verrs := selectTargets(weekEntries, req.EntryIDs)
		verrs = append(verrs, validateWeekForSubmission(weekEntries, targets)...)
		if len(verrs) > 0 {
			return verrs
		}

		for _, entry := range targets {
			fromStatus := entry.Status
			if err := entry.Submit(today, t.AllowFutureEntries); err != nil {
				return err
			}

			ok, err := s.entryRepo.UpdateStatus(txCtx, entry, fromStatus)
			if err != nil {
				return fmt.Errorf("failed to submit entry %s: %w", entry.ID, err)
			}
			if !ok {
				// A concurrent writer moved the row; abort the whole batch.
				return &timesheet.StateConflictError{Operation: "submit", Current: fromStatus}
			}
			submitted++
		}
		return nil
	})
	if err != nil {
		return timesheet.SubmissionResult{}, err
	}

	week, err := s.GetWeeklyView(ctx, req.TenantID, req.OwnerID, weekStart)
	if err != nil {
		return timesheet.SubmissionResult{}, err
	}

	return timesheet.SubmissionResult{SubmittedCount: submitted, Week: week}, nil
}

func (s *SubmissionService) GetWeeklyView(ctx context.Context, tenantID, ownerID string, weekStart dateutil.DateKey) (timesheet.WeeklyView, error) {
	entries, err := s.entryRepo.ListByOwnerWeek(ctx, tenantID, ownerID, weekStart)
	if err != nil {
		return timesheet.WeeklyView{}, fmt.Errorf("failed to list week entries: %w", err)
	}
	return s.calculator.Build(weekStart, entries), nil
}

// selectTargets resolves the target set. Without explicit ids it is every
// draft and rejected entry in the week; explicit ids must name entries of
// this week.
func selectTargets(weekEntries []timesheet.Entry, entryIDs []string) ([]timesheet.Entry, validator.ValidationErrors) {
	if entryIDs == nil {
		var targets []timesheet.Entry
		for _, e := range weekEntries {
			if e.Status == timesheet.StatusDraft || e.Status == timesheet.StatusRejected {
				targets = append(targets, e)
			}
		}
		return targets, nil
	}

	byID := make(map[string]timesheet.Entry, len(weekEntries))
	for _, e := range weekEntries {
		byID[e.ID] = e
	}

	var errs validator.ValidationErrors
	targets := make([]timesheet.Entry, 0, len(entryIDs))
	seen := make(map[string]bool, len(entryIDs))
	for _, id := range entryIDs {
		// A repeated id would submit the same row twice; the second
		// optimistic write would miss and sink the whole batch.
		if seen[id] {
			continue
		}
		seen[id] = true

		e, ok := byID[id]
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "entry_ids." + id,
				Message: "entry does not belong to this week",
			})
			continue
		}
		targets = append(targets, e)
	}
	return targets, errs
}

// validateWeekForSubmission runs the fail-fast checks. They are evaluated
// over the whole week, not just the target subset, and reported as one
// itemized list so the week can be corrected in a single pass.
func validateWeekForSubmission(weekEntries, targets []timesheet.Entry) validator.ValidationErrors {
	var errs validator.ValidationErrors

	var totalHours float64
	loggedDays := make(map[dateutil.DateKey]bool)
	for _, e := range weekEntries {
		totalHours += e.HoursWorked
		loggedDays[e.WorkDate] = true
	}

	if len(weekEntries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: "no entries to submit",
		})
	}
	if totalHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "week total must be greater than zero",
		})
	}
	if len(loggedDays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "missing_days",
			Message: "no work days logged",
		})
	}

	if len(weekEntries) > 0 && len(targets) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_ids",
			Message: "nothing in draft or rejected to submit",
		})
	}

	for _, e := range targets {
		if !validator.MinRunes(e.Description, timesheet.MinDescriptionLength) {
			errs = append(errs, validator.ValidationError{
				Field:   "entries." + e.ID + ".description",
				Message: "description must be at least 10 characters before submission",
			})
		}
	}

	return errs
}
