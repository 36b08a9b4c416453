package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/domain/notification"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/runlog"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
	"github.com/winco-group/attendance-backend-go/internal/pkg/sse"
	"github.com/winco-group/attendance-backend-go/internal/repository/postgresql"
)

// Config tunes a reconciliation run.
type Config struct {
	DedupWindow time.Duration
	Workers     int
	WindowDays  int
	Policy      Policy
}

// Runner turns unprocessed punches into attendance records.
type Runner struct {
	db             *database.DB
	punchRepo      punch.PunchRepository
	shiftRepo      shift.ShiftRepository
	attendanceRepo attendance.AttendanceRepository
	runLogRepo     runlog.RunLogRepository
	notifier       notification.Sender
	hub            *sse.Hub
	cfg            Config
}

func NewRunner(
	db *database.DB,
	punchRepo punch.PunchRepository,
	shiftRepo shift.ShiftRepository,
	attendanceRepo attendance.AttendanceRepository,
	runLogRepo runlog.RunLogRepository,
	notifier notification.Sender,
	hub *sse.Hub,
	cfg Config,
) *Runner {
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = DefaultDedupWindow
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 2
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyFirstLast
	}
	return &Runner{
		db:             db,
		punchRepo:      punchRepo,
		shiftRepo:      shiftRepo,
		attendanceRepo: attendanceRepo,
		runLogRepo:     runLogRepo,
		notifier:       notifier,
		hub:            hub,
		cfg:            cfg,
	}
}

// RunRecent reconciles the trailing window ending today. This is the
// scheduled entry point.
func (r *Runner) RunRecent(ctx context.Context) error {
	to := dateOnly(time.Now().UTC())
	from := to.AddDate(0, 0, -(r.cfg.WindowDays - 1))
	_, err := r.Run(ctx, from, to)
	return err
}

// Run reconciles every employee with unprocessed punches in the inclusive
// date range and persists a run log describing the outcome.
//
// Each employee is processed independently on a bounded worker pool; one
// employee's failure is recorded in the run log and does not stop the
// others. The returned error is non-nil only when the run as a whole could
// not proceed or its log could not be written.
func (r *Runner) Run(ctx context.Context, fromDate, toDate time.Time) (runlog.RunLog, error) {
	fromDate = dateOnly(fromDate)
	toDate = dateOnly(toDate)

	log := runlog.RunLog{
		ID:       uuid.Must(uuid.NewV7()).String(),
		RunAt:    time.Now().UTC(),
		FromDate: fromDate,
		ToDate:   toDate,
	}

	slog.Info("reconciliation run started",
		"run_id", log.ID,
		"from", fromDate.Format(time.DateOnly),
		"to", toDate.Format(time.DateOnly),
	)

	employeeIDs, err := r.punchRepo.ListEmployeesWithUnprocessed(ctx, fromDate, endOfDay(toDate))
	if err != nil {
		return r.closeFailed(ctx, log, fmt.Errorf("list employees with unprocessed punches: %w", err))
	}

	var (
		mu       sync.Mutex
		total    int
		failures []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, employeeID := range employeeIDs {
		employeeID := employeeID
		g.Go(func() error {
			processed, err := r.processEmployee(gctx, employeeID, fromDate, toDate, log.ID)

			mu.Lock()
			defer mu.Unlock()
			total += processed
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", employeeID, err))
				slog.Error("employee reconciliation failed",
					"run_id", log.ID, "employee_id", employeeID, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Total = total
	log.Errors = runlog.JoinErrors(failures)
	if len(failures) == 0 {
		log.Status = runlog.StatusSuccess
	} else {
		log.Status = runlog.StatusPartial
	}
	log.ClosedAt = time.Now().UTC()

	saved, err := r.runLogRepo.Append(ctx, log)
	if err != nil {
		return log, fmt.Errorf("append run log: %w", err)
	}

	slog.Info("reconciliation run finished",
		"run_id", saved.ID,
		"status", saved.Status,
		"total", saved.Total,
		"failed_employees", len(failures),
	)

	if r.hub != nil {
		r.hub.Broadcast(sse.Event{Event: sse.EventReconcileFinished, Data: saved})
	}
	return saved, nil
}

func (r *Runner) closeFailed(ctx context.Context, log runlog.RunLog, cause error) (runlog.RunLog, error) {
	log.Status = runlog.StatusFailed
	log.Errors = cause.Error()
	log.ClosedAt = time.Now().UTC()
	if saved, err := r.runLogRepo.Append(ctx, log); err == nil {
		log = saved
	} else {
		slog.Error("failed to persist failed run log", "run_id", log.ID, "error", err)
	}
	return log, cause
}

// processEmployee walks the date range day by day. The first day that
// errors aborts the remaining days for this employee; completed days stay
// committed.
func (r *Runner) processEmployee(ctx context.Context, employeeID string, fromDate, toDate time.Time, batchTag string) (int, error) {
	processed := 0
	for day := fromDate; !day.After(toDate); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		n, err := r.processEmployeeDay(ctx, employeeID, day, batchTag)
		if err != nil {
			return processed, fmt.Errorf("%s: %w", day.Format(time.DateOnly), err)
		}
		processed += n
	}
	return processed, nil
}

func (r *Runner) processEmployeeDay(ctx context.Context, employeeID string, day time.Time, batchTag string) (int, error) {
	unprocessed, err := r.punchRepo.ListUnprocessedForDay(ctx, employeeID, day)
	if err != nil {
		return 0, fmt.Errorf("list unprocessed punches: %w", err)
	}
	if len(unprocessed) == 0 {
		return 0, nil
	}

	shiftType, err := r.shiftRepo.GetForEmployee(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("resolve shift: %w", err)
	}
	if shiftType == nil {
		// Punches stay unprocessed so a later shift assignment picks
		// them up on the next run.
		slog.Debug("skipping employee day without shift",
			"employee_id", employeeID, "date", day.Format(time.DateOnly))
		return 0, nil
	}
	if shiftType.IsOvernight() {
		slog.Warn("skipping overnight shift",
			"employee_id", employeeID, "shift_id", shiftType.ID,
			"date", day.Format(time.DateOnly))
		return 0, nil
	}

	// Classification, flags and hours all derive from the full day,
	// processed punches included. An incremental run that only sees the
	// afternoon must not shrink the day's anchors or clear flags an
	// earlier run already established; only the marking below is scoped
	// to the unprocessed punches.
	allDay, err := r.punchRepo.ListForDay(ctx, employeeID, day)
	if err != nil {
		return 0, fmt.Errorf("list day punches: %w", err)
	}

	normalized := Normalize(allDay, r.cfg.DedupWindow)
	classification := Classify(normalized, *shiftType)

	if classification.InTime == nil && classification.OutTime == nil {
		// Nothing anchorable; mark the punches consumed so they are
		// not re-enumerated forever.
		if err := r.punchRepo.MarkProcessed(ctx, punchIDs(unprocessed), batchTag); err != nil {
			return 0, fmt.Errorf("mark processed: %w", err)
		}
		return 0, nil
	}

	breakHours := BreakHours(allDay)
	overtimeHours := OvertimeHours(classification.InTime, classification.OutTime, *shiftType)

	var workingHours *float64
	switch r.cfg.Policy {
	case PolicyPaired:
		w := PairedWorkedHours(normalized)
		workingHours = &w
	default:
		if classification.InTime != nil && classification.OutTime != nil {
			w := Round2(classification.OutTime.Sub(*classification.InTime).Hours())
			workingHours = &w
		}
	}
	var netWorkingHours *float64
	if workingHours != nil {
		n := Round2(*workingHours - breakHours)
		netWorkingHours = &n
	}

	record := attendance.Record{
		EmployeeID:      employeeID,
		Date:            day,
		Status:          attendance.StatusPresent,
		InTime:          classification.InTime,
		OutTime:         classification.OutTime,
		LateEntry:       classification.LateEntry,
		EarlyExit:       classification.EarlyExit,
		OutsideGeofence: anyOutsideGeofence(normalized),
		DeviceAnomaly:   hasDeviceAnomaly(normalized),
		WorkingHours:    workingHours,
		OvertimeHours:   &overtimeHours,
		BreakHours:      &breakHours,
		NetWorkingHours: netWorkingHours,
	}

	// The record write and the processed-marking commit together. Even
	// without the transaction the ordering is safe: a failed marking leaves
	// the punches unprocessed and the next run's upsert rewrites the same
	// record.
	var saved attendance.Record
	err = r.inTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = r.attendanceRepo.Upsert(ctx, record)
		if err != nil {
			return fmt.Errorf("upsert attendance: %w", err)
		}
		if err := r.punchRepo.MarkProcessed(ctx, punchIDs(unprocessed), batchTag); err != nil {
			return fmt.Errorf("mark processed: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if saved.HasAnomaly() && r.notifier != nil {
		if err := r.notifier.NotifyAnomaly(ctx, saved); err != nil {
			slog.Warn("anomaly notification failed",
				"employee_id", employeeID, "date", day.Format(time.DateOnly), "error", err)
		}
	}
	return 1, nil
}

// inTransaction runs fn with a transaction on the context so repository
// calls inside share it. Without a pool fn runs against whatever querier the
// repositories were built with.
func (r *Runner) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

func anyOutsideGeofence(punches []punch.PunchEvent) bool {
	for i := range punches {
		p := punches[i]
		if p.Source == punch.SourceMobile && p.WithinGeofence != nil && !*p.WithinGeofence {
			return true
		}
	}
	return false
}

// hasDeviceAnomaly reports whether the day's mobile punches carry two or
// more distinct device fingerprints.
func hasDeviceAnomaly(punches []punch.PunchEvent) bool {
	seen := make(map[string]struct{})
	for i := range punches {
		p := punches[i]
		if p.Source != punch.SourceMobile || p.DeviceFingerprint == nil || *p.DeviceFingerprint == "" {
			continue
		}
		seen[*p.DeviceFingerprint] = struct{}{}
		if len(seen) >= 2 {
			return true
		}
	}
	return false
}

func punchIDs(punches []punch.PunchEvent) []string {
	ids := make([]string, len(punches))
	for i := range punches {
		ids[i] = punches[i].ID
	}
	return ids
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return dateOnly(t).Add(24*time.Hour - time.Nanosecond)
}
