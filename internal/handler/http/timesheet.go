package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/handler/http/response"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	SubmitWeek(w http.ResponseWriter, r *http.Request)
	GetWeeklyView(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	entryService      timesheet.EntryService
	submissionService timesheet.SubmissionService
}

func NewTimesheetHandler(entryService timesheet.EntryService, submissionService timesheet.SubmissionService) TimesheetHandler {
	return &timesheetHandlerImpl{
		entryService:      entryService,
		submissionService: submissionService,
	}
}

// Create implements TimesheetHandler.
func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create entry request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OwnerID = identity.EmployeeID
	req.TenantID = identity.TenantID

	result, err := h.entryService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry created", result)
}

// Update implements TimesheetHandler.
func (h *timesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.OwnerID = identity.EmployeeID
	req.TenantID = identity.TenantID

	result, err := h.entryService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements TimesheetHandler.
func (h *timesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.entryService.DeleteEntry(r.Context(), chi.URLParam(r, "id"), identity.TenantID, identity.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted", nil)
}

// Reopen implements TimesheetHandler.
func (h *timesheetHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.entryService.ReopenEntry(r.Context(), chi.URLParam(r, "id"), identity.TenantID, identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry reopened for editing", result)
}

// SubmitWeek implements TimesheetHandler.
func (h *timesheetHandlerImpl) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.SubmitWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.OwnerID = identity.EmployeeID
	req.TenantID = identity.TenantID

	result, err := h.submissionService.SubmitWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week submitted", result)
}

// GetWeeklyView implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetWeeklyView(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	weekStart, err := dateutil.Parse(chi.URLParam(r, "weekStart"))
	if err != nil {
		response.BadRequest(w, "week start must be a calendar date in YYYY-MM-DD form", nil)
		return
	}
	// Any day of the week resolves to its Monday.
	weekStart = dateutil.StartOfISOWeek(weekStart)

	view, err := h.submissionService.GetWeeklyView(r.Context(), identity.TenantID, identity.EmployeeID, weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ListMy implements TimesheetHandler.
func (h *timesheetHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter, err := parseEntryFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.entryService.ListMyEntries(r.Context(), identity.TenantID, identity.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalItems + int64(result.Limit) - 1) / int64(result.Limit))
	response.SuccessWithMeta(w, result.Entries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalItems,
		TotalPages: totalPages,
	})
}

// Approve implements TimesheetHandler.
func (h *timesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.ApproveEntryRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EntryID = chi.URLParam(r, "id")
	req.TenantID = identity.TenantID
	req.ReviewerID = identity.EmployeeID

	result, err := h.entryService.ApproveEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry approved", result)
}

// Reject implements TimesheetHandler.
func (h *timesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.RejectEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EntryID = chi.URLParam(r, "id")
	req.TenantID = identity.TenantID
	req.ReviewerID = identity.EmployeeID

	result, err := h.entryService.RejectEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry rejected", result)
}

func parseEntryFilter(r *http.Request) (timesheet.EntryFilter, error) {
	var filter timesheet.EntryFilter

	if v := r.URL.Query().Get("date_from"); v != "" {
		key, err := dateutil.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &key
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		key, err := dateutil.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &key
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if !validator.IsInSlice(v, []string{
			string(timesheet.StatusDraft),
			string(timesheet.StatusSubmitted),
			string(timesheet.StatusApproved),
			string(timesheet.StatusRejected),
		}) {
			return filter, fmt.Errorf("unknown status %q", v)
		}
		status := timesheet.EntryStatus(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}

	return filter, nil
}
