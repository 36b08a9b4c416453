package attendance

import (
	"time"

	"github.com/winco-group/attendance-backend-go/internal/pkg/validator"
)

type ListFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Status   *Status
	Page     int
	Limit    int
}

// Normalize clamps pagination to sane bounds.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type RecordResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	Date            string   `json:"date"`
	Status          string   `json:"status"`
	InTime          *string  `json:"in_time,omitempty"`
	OutTime         *string  `json:"out_time,omitempty"`
	LateEntry       bool     `json:"late_entry"`
	EarlyExit       bool     `json:"early_exit"`
	OutsideGeofence bool     `json:"outside_geofence"`
	DeviceAnomaly   bool     `json:"device_anomaly"`
	WorkingHours    *float64 `json:"working_hours,omitempty"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
	BreakHours      *float64 `json:"break_hours,omitempty"`
	NetWorkingHours *float64 `json:"net_working_hours,omitempty"`
}

// ToResponse converts a Record entity into its API shape.
func ToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date.Format("2006-01-02"),
		Status:          string(r.Status),
		LateEntry:       r.LateEntry,
		EarlyExit:       r.EarlyExit,
		OutsideGeofence: r.OutsideGeofence,
		DeviceAnomaly:   r.DeviceAnomaly,
		WorkingHours:    r.WorkingHours,
		OvertimeHours:   r.OvertimeHours,
		BreakHours:      r.BreakHours,
		NetWorkingHours: r.NetWorkingHours,
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.InTime != nil {
		s := r.InTime.Format("2006-01-02 15:04:05")
		resp.InTime = &s
	}
	if r.OutTime != nil {
		s := r.OutTime.Format("2006-01-02 15:04:05")
		resp.OutTime = &s
	}
	return resp
}

type OvertimeSummaryRequest struct {
	EmployeeID string
	FromDate   string
	ToDate     string
}

func (r *OvertimeSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be YYYY-MM-DD",
		})
	}
	if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OvertimeDay struct {
	Date          string  `json:"date"`
	OvertimeHours float64 `json:"overtime_hours"`
	BreakHours    float64 `json:"break_hours"`
}

type OvertimeSummaryResponse struct {
	EmployeeID         string        `json:"employee_id"`
	FromDate           string        `json:"from_date"`
	ToDate             string        `json:"to_date"`
	TotalOvertimeHours float64       `json:"total_overtime_hours"`
	TotalBreakHours    float64       `json:"total_break_hours"`
	OvertimeDaysCount  int           `json:"overtime_days_count"`
	OvertimeDays       []OvertimeDay `json:"overtime_days"`
}
