package http

import (
	"net/http"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/project"
	"github.com/nimbus-hr/timesheet-backend-go/internal/handler/http/response"
)

type ProjectHandler interface {
	ListSelectable(w http.ResponseWriter, r *http.Request)
}

type projectHandlerImpl struct {
	projectRepo project.ProjectRepository
}

func NewProjectHandler(projectRepo project.ProjectRepository) ProjectHandler {
	return &projectHandlerImpl{projectRepo: projectRepo}
}

type taskResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type projectResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Code  *string        `json:"code,omitempty"`
	Tasks []taskResponse `json:"tasks"`
}

// ListSelectable implements ProjectHandler. It returns the active projects
// and tasks the entry form can reference.
func (h *projectHandlerImpl) ListSelectable(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	projects, err := h.projectRepo.ListSelectable(r.Context(), identity.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		tasks := make([]taskResponse, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			tasks = append(tasks, taskResponse{ID: t.ID, Name: t.Name})
		}
		result = append(result, projectResponse{
			ID:    p.ID,
			Name:  p.Name,
			Code:  p.Code,
			Tasks: tasks,
		})
	}

	response.Success(w, result)
}
