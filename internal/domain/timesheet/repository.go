package timesheet

import (
	"context"

	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
)

// EntryRepository defines data access for timesheet entries. Every method
// takes the tenant id so a query can never cross tenants; owner-scoped
// methods additionally take the owner so one employee can never read
// another's rows.
type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)

	// GetByID retrieves an entry with tenant isolation. Returns
	// ErrEntryNotFound when no row matches, including rows owned by a
	// different tenant.
	GetByID(ctx context.Context, id, tenantID string) (Entry, error)

	// ListByOwnerWeek retrieves all entries for one owner whose work_date
	// lies in [weekStart, weekStart+6], ordered by work_date.
	ListByOwnerWeek(ctx context.Context, tenantID, ownerID string, weekStart dateutil.DateKey) ([]Entry, error)

	// ListByOwner retrieves an owner's entries with filters and pagination.
	ListByOwner(ctx context.Context, tenantID, ownerID string, filter EntryFilter) ([]Entry, int64, error)

	// Update persists the mutable fields of an editable entry. The write is
	// predicated on the status the caller read; a concurrent transition makes
	// it affect zero rows, reported as updated=false.
	Update(ctx context.Context, entry Entry, expectStatus EntryStatus) (bool, error)

	// UpdateStatus performs one optimistic status transition, writing the
	// transition side effects (approval metadata, rejection reason) along
	// with the status. Returns false when the row was not in fromStatus.
	UpdateStatus(ctx context.Context, entry Entry, fromStatus EntryStatus) (bool, error)

	// Delete removes an entry if it is still in one of the given statuses.
	// Returns false when the row exists but has moved on.
	Delete(ctx context.Context, id, tenantID string, allowed []EntryStatus) (bool, error)
}
