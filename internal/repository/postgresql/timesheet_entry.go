package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/database"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
)

type timesheetEntryRepository struct {
	db *database.DB
}

func NewTimesheetEntryRepository(db *database.DB) timesheet.EntryRepository {
	return &timesheetEntryRepository{db: db}
}

const entryColumns = `
	e.id, e.tenant_id, e.owner_id, e.work_date,
	e.project_id, e.task_id, e.hours_worked, e.description,
	e.is_billable, e.billing_rate, e.billing_amount,
	e.activity_type, e.work_type,
	e.status, e.approved_at, e.approved_by, e.is_auto_approved,
	e.rejection_reason, e.created_at, e.updated_at,
	p.name, t.name
`

func scanEntry(row pgx.Row) (timesheet.Entry, error) {
	var e timesheet.Entry
	var workDate time.Time
	var status string

	err := row.Scan(
		&e.ID, &e.TenantID, &e.OwnerID, &workDate,
		&e.ProjectID, &e.TaskID, &e.HoursWorked, &e.Description,
		&e.IsBillable, &e.BillingRate, &e.BillingAmount,
		&e.ActivityType, &e.WorkType,
		&status, &e.ApprovedAt, &e.ApprovedBy, &e.IsAutoApproved,
		&e.RejectionReason, &e.CreatedAt, &e.UpdatedAt,
		&e.ProjectName, &e.TaskName,
	)
	if err != nil {
		return timesheet.Entry{}, err
	}

	// work_date is a DATE column; re-key it without touching any timezone.
	e.WorkDate = dateutil.DateKey(workDate.Format("2006-01-02"))
	e.Status = timesheet.EntryStatus(status)
	return e, nil
}

// Create implements timesheet.EntryRepository.
func (r *timesheetEntryRepository) Create(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_entries (
			id, tenant_id, owner_id, work_date,
			project_id, task_id, hours_worked, description,
			is_billable, billing_rate, billing_amount,
			activity_type, work_type, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.TenantID,
		entry.OwnerID,
		entry.WorkDate.String(),
		entry.ProjectID,
		entry.TaskID,
		entry.HoursWorked,
		entry.Description,
		entry.IsBillable,
		entry.BillingRate,
		entry.BillingAmount,
		entry.ActivityType,
		entry.WorkType,
		string(entry.Status),
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("failed to create timesheet entry: %w", err)
	}

	return entry, nil
}

// GetByID implements timesheet.EntryRepository.
func (r *timesheetEntryRepository) GetByID(ctx context.Context, id, tenantID string) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries e
		LEFT JOIN projects p ON p.id = e.project_id
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE e.id = $1 AND e.tenant_id = $2
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to get timesheet entry: %w", err)
	}

	return entry, nil
}

// ListByOwnerWeek implements timesheet.EntryRepository.
func (r *timesheetEntryRepository) ListByOwnerWeek(ctx context.Context, tenantID, ownerID string, weekStart dateutil.DateKey) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries e
		LEFT JOIN projects p ON p.id = e.project_id
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE e.tenant_id = $1
		  AND e.owner_id = $2
		  AND e.work_date BETWEEN $3 AND $4
		ORDER BY e.work_date, e.created_at
	`

	rows, err := q.Query(ctx, query, tenantID, ownerID, weekStart.String(), dateutil.WeekEnd(weekStart).String())
	if err != nil {
		return nil, fmt.Errorf("failed to list week entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListByOwner implements timesheet.EntryRepository.
func (r *timesheetEntryRepository) ListByOwner(ctx context.Context, tenantID, ownerID string, filter timesheet.EntryFilter) ([]timesheet.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"e.tenant_id = $1", "e.owner_id = $2"}
	args := []interface{}{tenantID, ownerID}

	if filter.DateFrom != nil {
		args = append(args, filter.DateFrom.String())
		conditions = append(conditions, fmt.Sprintf("e.work_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, filter.DateTo.String())
		conditions = append(conditions, fmt.Sprintf("e.work_date <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM timesheet_entries e WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheet entries: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT `+entryColumns+`
		FROM timesheet_entries e
		LEFT JOIN projects p ON p.id = e.project_id
		LEFT JOIN tasks t ON t.id = e.task_id
		WHERE %s
		ORDER BY e.work_date DESC, e.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

// Update implements timesheet.EntryRepository. The status predicate makes the
// write optimistic: a row that moved on since the caller's read is left
// untouched and reported as not updated.
func (r *timesheetEntryRepository) Update(ctx context.Context, entry timesheet.Entry, expectStatus timesheet.EntryStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheet_entries SET
			work_date = $1,
			project_id = $2,
			task_id = $3,
			hours_worked = $4,
			description = $5,
			is_billable = $6,
			activity_type = $7,
			work_type = $8,
			updated_at = NOW()
		WHERE id = $9 AND tenant_id = $10 AND status = $11
	`

	tag, err := q.Exec(ctx, query,
		entry.WorkDate.String(),
		entry.ProjectID,
		entry.TaskID,
		entry.HoursWorked,
		entry.Description,
		entry.IsBillable,
		entry.ActivityType,
		entry.WorkType,
		entry.ID,
		entry.TenantID,
		string(expectStatus),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update timesheet entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus implements timesheet.EntryRepository. Writes the status along
// with the transition side effects; the fromStatus predicate loses cleanly
// against concurrent transitions.
func (r *timesheetEntryRepository) UpdateStatus(ctx context.Context, entry timesheet.Entry, fromStatus timesheet.EntryStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheet_entries SET
			status = $1,
			approved_at = $2,
			approved_by = $3,
			is_auto_approved = $4,
			rejection_reason = $5,
			updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7 AND status = $8
	`

	tag, err := q.Exec(ctx, query,
		string(entry.Status),
		entry.ApprovedAt,
		entry.ApprovedBy,
		entry.IsAutoApproved,
		entry.RejectionReason,
		entry.ID,
		entry.TenantID,
		string(fromStatus),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update entry status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete implements timesheet.EntryRepository.
func (r *timesheetEntryRepository) Delete(ctx context.Context, id, tenantID string, allowed []timesheet.EntryStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	statuses := make([]string, 0, len(allowed))
	for _, s := range allowed {
		statuses = append(statuses, string(s))
	}

	query := `
		DELETE FROM timesheet_entries
		WHERE id = $1 AND tenant_id = $2 AND status = ANY($3)
	`

	tag, err := q.Exec(ctx, query, id, tenantID, statuses)
	if err != nil {
		return false, fmt.Errorf("failed to delete timesheet entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
