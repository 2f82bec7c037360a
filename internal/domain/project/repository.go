package project

import "context"

type ProjectRepository interface {
	// ListSelectable returns active projects with their active tasks for the
	// tenant's entry form.
	ListSelectable(ctx context.Context, tenantID string) ([]ProjectWithTasks, error)

	// Exists checks a project (and optionally one of its tasks) against the
	// tenant. Task ids are only meaningful under their project.
	Exists(ctx context.Context, tenantID, projectID string, taskID *string) (bool, error)
}
