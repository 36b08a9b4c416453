package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/handler/http/middleware"
	"github.com/winco-group/attendance-backend-go/internal/handler/http/response"
	"github.com/winco-group/attendance-backend-go/internal/service/overtime"
)

type AttendanceHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	OvertimeSummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceRepo  attendance.AttendanceRepository
	overtimeService overtime.OvertimeService
}

func NewAttendanceHandler(attendanceRepo attendance.AttendanceRepository, overtimeService overtime.OvertimeService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceRepo:  attendanceRepo,
		overtimeService: overtimeService,
	}
}

// ListMine implements AttendanceHandler. Returns the caller's own records.
func (a *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.EmployeeIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := parseListFilter(r)
	records, total, err := a.attendanceRepo.ListMine(r.Context(), employeeID, filter)
	if err != nil {
		slog.Error("ListMine repository error", "employee_id", employeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, toResponses(records), listMeta(filter, total))
}

// List implements AttendanceHandler. HR view across all employees.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseListFilter(r)
	records, total, err := a.attendanceRepo.List(r.Context(), filter)
	if err != nil {
		slog.Error("List repository error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, toResponses(records), listMeta(filter, total))
}

// OvertimeSummary implements AttendanceHandler. Employees may query only
// their own summary; HR may query anyone's via the employee_id parameter.
func (a *AttendanceHandlerImpl) OvertimeSummary(w http.ResponseWriter, r *http.Request) {
	callerID, err := middleware.EmployeeIDFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := attendance.OvertimeSummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		FromDate:   r.URL.Query().Get("from_date"),
		ToDate:     r.URL.Query().Get("to_date"),
	}
	if req.EmployeeID == "" {
		req.EmployeeID = callerID
	}
	if req.EmployeeID != callerID {
		role, err := middleware.RoleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if role != employee.RoleHR {
			response.Forbidden(w, "Cannot query another employee's summary")
			return
		}
	}

	summary, err := a.overtimeService.Summary(r.Context(), req)
	if err != nil {
		slog.Error("OvertimeSummary service error", "employee_id", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func parseListFilter(r *http.Request) attendance.ListFilter {
	var filter attendance.ListFilter

	if v := r.URL.Query().Get("from_date"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			filter.FromDate = &t
		}
	}
	if v := r.URL.Query().Get("to_date"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			filter.ToDate = &t
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := attendance.Status(v)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Normalize()
	return filter
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, len(records))
	for i, record := range records {
		responses[i] = attendance.ToResponse(record)
	}
	return responses
}

func listMeta(filter attendance.ListFilter, total int64) *response.Meta {
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
