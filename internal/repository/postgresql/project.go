package postgresql

import (
	"context"
	"fmt"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/project"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

// ListSelectable implements project.ProjectRepository.
func (r *projectRepository) ListSelectable(ctx context.Context, tenantID string) ([]project.ProjectWithTasks, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, code, is_active, created_at, updated_at
		FROM projects
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.ProjectWithTasks
	index := make(map[string]int)
	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Code, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		index[p.ID] = len(projects)
		projects = append(projects, project.ProjectWithTasks{Project: p})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	taskQuery := `
		SELECT t.id, t.project_id, t.name, t.is_active, t.created_at, t.updated_at
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE p.tenant_id = $1 AND p.is_active = true AND t.is_active = true
		ORDER BY t.name
	`

	taskRows, err := q.Query(ctx, taskQuery, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var t project.Task
		if err := taskRows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if i, ok := index[t.ProjectID]; ok {
			projects[i].Tasks = append(projects[i].Tasks, t)
		}
	}
	return projects, taskRows.Err()
}

// Exists implements project.ProjectRepository.
func (r *projectRepository) Exists(ctx context.Context, tenantID, projectID string, taskID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if taskID == nil {
		query := `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1 AND tenant_id = $2 AND is_active = true)`
		if err := q.QueryRow(ctx, query, projectID, tenantID).Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to check project: %w", err)
		}
		return exists, nil
	}

	query := `
		SELECT EXISTS(
			SELECT 1 FROM tasks t
			JOIN projects p ON p.id = t.project_id
			WHERE t.id = $1 AND p.id = $2 AND p.tenant_id = $3
			  AND t.is_active = true AND p.is_active = true
		)
	`
	if err := q.QueryRow(ctx, query, *taskID, projectID, tenantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	return exists, nil
}
