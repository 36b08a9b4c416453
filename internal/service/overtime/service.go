package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
	"github.com/winco-group/attendance-backend-go/internal/service/reconcile"
)

// OvertimeService recomputes derived hour figures after the day has fully
// settled and answers per-employee summaries.
type OvertimeService interface {
	// ProcessDaily recomputes overtime and break hours for every Present
	// record on the given date
	ProcessDaily(ctx context.Context, date time.Time) error

	// Summary aggregates overtime and break hours for one employee over
	// an inclusive date range
	Summary(ctx context.Context, req attendance.OvertimeSummaryRequest) (attendance.OvertimeSummaryResponse, error)
}

type overtimeService struct {
	attendanceRepo attendance.AttendanceRepository
	punchRepo      punch.PunchRepository
	shiftRepo      shift.ShiftRepository
}

func NewOvertimeService(
	attendanceRepo attendance.AttendanceRepository,
	punchRepo punch.PunchRepository,
	shiftRepo shift.ShiftRepository,
) OvertimeService {
	return &overtimeService{
		attendanceRepo: attendanceRepo,
		punchRepo:      punchRepo,
		shiftRepo:      shiftRepo,
	}
}

// ProcessDaily re-derives overtime, break and net working hours for each
// Present record of the date. Hourly reconciliation already wrote these
// figures from partial days; this pass runs once the day is over so late
// punches are reflected. Per-record failures are logged and do not stop
// the pass.
func (s *overtimeService) ProcessDaily(ctx context.Context, date time.Time) error {
	records, err := s.attendanceRepo.ListPresentByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("list present records: %w", err)
	}

	updated, failed := 0, 0
	for _, record := range records {
		if err := s.processRecord(ctx, record, date); err != nil {
			failed++
			slog.Error("daily overtime recompute failed",
				"employee_id", record.EmployeeID,
				"date", date.Format(time.DateOnly),
				"error", err)
			continue
		}
		updated++
	}

	slog.Info("daily overtime pass finished",
		"date", date.Format(time.DateOnly),
		"updated", updated,
		"failed", failed,
	)
	if failed > 0 && updated == 0 && len(records) > 0 {
		return fmt.Errorf("all %d records failed", failed)
	}
	return nil
}

func (s *overtimeService) processRecord(ctx context.Context, record attendance.Record, date time.Time) error {
	shiftType, err := s.shiftRepo.GetForEmployee(ctx, record.EmployeeID)
	if err != nil {
		return fmt.Errorf("resolve shift: %w", err)
	}
	if shiftType == nil || shiftType.IsOvernight() {
		return nil
	}

	punches, err := s.punchRepo.ListForDay(ctx, record.EmployeeID, date)
	if err != nil {
		return fmt.Errorf("list day punches: %w", err)
	}

	overtimeHours := reconcile.OvertimeHours(record.InTime, record.OutTime, *shiftType)
	breakHours := reconcile.BreakHours(punches)

	var netHours *float64
	if record.WorkingHours != nil {
		n := reconcile.Round2(*record.WorkingHours - breakHours)
		netHours = &n
	}

	return s.attendanceRepo.UpdateDerivedHours(ctx, record.ID, &overtimeHours, &breakHours, netHours)
}

func (s *overtimeService) Summary(ctx context.Context, req attendance.OvertimeSummaryRequest) (attendance.OvertimeSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OvertimeSummaryResponse{}, err
	}

	from, _ := time.Parse(time.DateOnly, req.FromDate)
	to, _ := time.Parse(time.DateOnly, req.ToDate)

	records, err := s.attendanceRepo.ListPresentByDateRange(ctx, req.EmployeeID, from, to)
	if err != nil {
		return attendance.OvertimeSummaryResponse{}, fmt.Errorf("list records: %w", err)
	}

	resp := attendance.OvertimeSummaryResponse{
		EmployeeID:   req.EmployeeID,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		OvertimeDays: []attendance.OvertimeDay{},
	}
	for _, record := range records {
		var overtime, breaks float64
		if record.OvertimeHours != nil {
			overtime = *record.OvertimeHours
		}
		if record.BreakHours != nil {
			breaks = *record.BreakHours
		}

		resp.TotalOvertimeHours += overtime
		resp.TotalBreakHours += breaks
		if overtime > 0 {
			resp.OvertimeDaysCount++
			resp.OvertimeDays = append(resp.OvertimeDays, attendance.OvertimeDay{
				Date:          record.Date.Format(time.DateOnly),
				OvertimeHours: overtime,
				BreakHours:    breaks,
			})
		}
	}
	resp.TotalOvertimeHours = reconcile.Round2(resp.TotalOvertimeHours)
	resp.TotalBreakHours = reconcile.Round2(resp.TotalBreakHours)
	return resp, nil
}
