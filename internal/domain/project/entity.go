package project

import "time"

// Project and Task are collaborator-owned reference data. The timesheet core
// only reads them to populate the entry form and validate references.
type Project struct {
	ID       string
	TenantID string
	Name     string
	Code     *string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID        string
	ProjectID string
	Name      string
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectWithTasks is the shape the entry form consumes.
type ProjectWithTasks struct {
	Project
	Tasks []Task
}
