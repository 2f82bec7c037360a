package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/database"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
	testDBErr  error
)

// connectTestDB returns the shared test pool. The database-backed tests are
// gated on TEST_DATABASE_URL so the rest of the suite stays runnable without
// a live Postgres. The target database must have the migrations applied.
func connectTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr)
	return testDB
}

func truncateAllTables(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"timesheet_entries",
		"tasks",
		"projects",
		"tenants",
	}
	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestTenant(t *testing.T, db *database.DB, timezone string, allowFuture bool) string {
	t.Helper()

	var tenantID string
	err := db.QueryRow(context.Background(), `
		INSERT INTO tenants (id, name, timezone, allow_future_entries)
		VALUES (gen_random_uuid(), 'Test Tenant', $1, $2)
		RETURNING id
	`, timezone, allowFuture).Scan(&tenantID)
	require.NoError(t, err)
	return tenantID
}

func createTestProject(t *testing.T, db *database.DB, tenantID, name string) string {
	t.Helper()

	var projectID string
	err := db.QueryRow(context.Background(), `
		INSERT INTO projects (id, tenant_id, name)
		VALUES (gen_random_uuid(), $1, $2)
		RETURNING id
	`, tenantID, name).Scan(&projectID)
	require.NoError(t, err)
	return projectID
}

func newDraftEntry(tenantID, ownerID string, workDate dateutil.DateKey, hours float64) timesheet.Entry {
	return timesheet.Entry{
		ID:          uuid.Must(uuid.NewV7()).String(),
		TenantID:    tenantID,
		OwnerID:     ownerID,
		WorkDate:    workDate,
		HoursWorked: hours,
		Description: "implemented the weekly report endpoint",
		Status:      timesheet.StatusDraft,
	}
}

func newOwnerID() string {
	return uuid.Must(uuid.NewV7()).String()
}
