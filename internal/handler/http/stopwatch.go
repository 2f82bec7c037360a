package http

import (
	"net/http"

	"github.com/nimbus-hr/timesheet-backend-go/internal/handler/http/response"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/stopwatch"
)

type StopwatchHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	Discard(w http.ResponseWriter, r *http.Request)
}

type stopwatchHandlerImpl struct {
	tracker *stopwatch.Tracker
}

func NewStopwatchHandler(tracker *stopwatch.Tracker) StopwatchHandler {
	return &stopwatchHandlerImpl{tracker: tracker}
}

// Start implements StopwatchHandler.
func (h *stopwatchHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.tracker.Start(identity.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stopwatch started", nil)
}

// Status implements StopwatchHandler.
func (h *stopwatchHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	elapsed, err := h.tracker.Elapsed(identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"elapsed_seconds": int64(elapsed.Seconds()),
	})
}

// Stop implements StopwatchHandler. The returned hours are a suggestion for
// the entry form, not a recorded value.
func (h *stopwatchHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	hours, err := h.tracker.Stop(identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stopwatch stopped", map[string]interface{}{
		"proposed_hours": hours,
	})
}

// Discard implements StopwatchHandler.
func (h *stopwatchHandlerImpl) Discard(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.tracker.Discard(identity.EmployeeID)

	response.SuccessWithMessage(w, "Stopwatch discarded", nil)
}
