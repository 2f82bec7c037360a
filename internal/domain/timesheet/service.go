package timesheet

import (
	"context"

	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
)

// EntryService covers the per-entry lifecycle operations.
type EntryService interface {
	// CreateEntry creates a new draft entry for the owner.
	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)

	// UpdateEntry mutates an owner's draft or rejected entry.
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)

	// DeleteEntry removes a draft or rejected entry.
	DeleteEntry(ctx context.Context, id, tenantID, ownerID string) error

	// ReopenEntry reverts the owner's submitted entry to draft.
	ReopenEntry(ctx context.Context, id, tenantID, ownerID string) (EntryResponse, error)

	// ApproveEntry and RejectEntry accept the external reviewer workflow's
	// outcome for a submitted entry.
	ApproveEntry(ctx context.Context, req ApproveEntryRequest) (EntryResponse, error)
	RejectEntry(ctx context.Context, req RejectEntryRequest) (EntryResponse, error)

	// ListMyEntries retrieves the owner's entries.
	ListMyEntries(ctx context.Context, tenantID, ownerID string, filter EntryFilter) (ListEntriesResponse, error)
}

// SubmissionService covers week-scoped operations.
type SubmissionService interface {
	// SubmitWeek validates and submits the target set as one unit.
	SubmitWeek(ctx context.Context, req SubmitWeekRequest) (SubmissionResult, error)

	// GetWeeklyView recomputes the weekly projection for one owner.
	GetWeeklyView(ctx context.Context, tenantID, ownerID string, weekStart dateutil.DateKey) (WeeklyView, error)
}
