package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/runlog"
	"github.com/winco-group/attendance-backend-go/internal/handler/http/response"
	"github.com/winco-group/attendance-backend-go/internal/pkg/validator"
	"github.com/winco-group/attendance-backend-go/internal/service/reconcile"
)

type ReconciliationHandler interface {
	TriggerRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
}

type ReconciliationHandlerImpl struct {
	runner     *reconcile.Runner
	runLogRepo runlog.RunLogRepository
}

func NewReconciliationHandler(runner *reconcile.Runner, runLogRepo runlog.RunLogRepository) ReconciliationHandler {
	return &ReconciliationHandlerImpl{
		runner:     runner,
		runLogRepo: runLogRepo,
	}
}

type triggerRunRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

func (req *triggerRunRequest) validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(req.FromDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be YYYY-MM-DD",
		})
	}
	to, okTo := validator.IsValidDate(req.ToDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be YYYY-MM-DD",
		})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not precede from_date",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

// TriggerRun implements ReconciliationHandler. Kicks off a synchronous run
// over the requested range and returns its run log.
func (h *ReconciliationHandlerImpl) TriggerRun(w http.ResponseWriter, r *http.Request) {
	var req triggerRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("TriggerRun decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	from, to, err := req.validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	log, err := h.runner.Run(r.Context(), from, to)
	if err != nil {
		slog.Error("TriggerRun runner error", "run_id", log.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reconciliation run completed", runLogToResponse(log))
}

// ListRuns implements ReconciliationHandler.
func (h *ReconciliationHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, total, err := h.runLogRepo.List(r.Context(), page, limit)
	if err != nil {
		slog.Error("ListRuns repository error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]runLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = runLogToResponse(log)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	response.SuccessWithMeta(w, responses, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}

// GetRun implements ReconciliationHandler.
func (h *ReconciliationHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid run log id", nil)
		return
	}

	log, err := h.runLogRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runLogToResponse(log))
}

type runLogResponse struct {
	ID       string `json:"id"`
	RunAt    string `json:"run_at"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Status   string `json:"status"`
	Total    int    `json:"total"`
	Errors   string `json:"errors,omitempty"`
	ClosedAt string `json:"closed_at"`
}

func runLogToResponse(log runlog.RunLog) runLogResponse {
	return runLogResponse{
		ID:       log.ID,
		RunAt:    log.RunAt.Format(time.RFC3339),
		FromDate: log.FromDate.Format(time.DateOnly),
		ToDate:   log.ToDate.Format(time.DateOnly),
		Status:   string(log.Status),
		Total:    log.Total,
		Errors:   log.Errors,
		ClosedAt: log.ClosedAt.Format(time.RFC3339),
	}
}
