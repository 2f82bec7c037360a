package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/tenant"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/database"
)

type tenantRepository struct {
	db *database.DB
}

func NewTenantRepository(db *database.DB) tenant.TenantRepository {
	return &tenantRepository{db: db}
}

// GetByID implements tenant.TenantRepository.
func (r *tenantRepository) GetByID(ctx context.Context, id string) (tenant.Tenant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, allow_future_entries, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var t tenant.Tenant
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Timezone, &t.AllowFutureEntries, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tenant.Tenant{}, tenant.ErrTenantNotFound
		}
		return tenant.Tenant{}, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}
