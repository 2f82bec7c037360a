package http

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/user"
)

// Identity is the per-request identity context the external auth
// collaborator encodes into the access token.
type Identity struct {
	EmployeeID string
	TenantID   string
	Role       user.Role
}

func identityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, user.ErrEmployeeIDRequired
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Identity{}, user.ErrEmployeeIDRequired
	}

	tenantID, ok := claims["tenant_id"].(string)
	if !ok || tenantID == "" {
		return Identity{}, user.ErrTenantIDRequired
	}

	role, _ := claims["role"].(string)

	return Identity{
		EmployeeID: employeeID,
		TenantID:   tenantID,
		Role:       user.Role(role),
	}, nil
}
