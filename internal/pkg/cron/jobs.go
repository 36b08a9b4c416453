package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/service/anomaly"
	"github.com/winco-group/attendance-backend-go/internal/service/devicesync"
	"github.com/winco-group/attendance-backend-go/internal/service/overtime"
	"github.com/winco-group/attendance-backend-go/internal/service/reconcile"
)

// RegisterJobs wires the attendance schedules onto the scheduler:
// device sync every 5 minutes, punch reconciliation hourly, and the
// overtime and anomaly passes once per day after midnight UTC.
func RegisterJobs(
	s *Scheduler,
	syncService devicesync.SyncService,
	runner *reconcile.Runner,
	overtimeService overtime.OvertimeService,
	anomalyService anomaly.AnomalyService,
) {
	s.AddJob("sync_biometric_devices", 5*time.Minute, true, func(ctx context.Context) error {
		return syncService.SyncAll(ctx)
	})

	s.AddJob("process_attendance_punches", time.Hour, true, func(ctx context.Context) error {
		return runner.RunRecent(ctx)
	})

	// The hourly tick plus the midnight gate yields one execution per day,
	// within the first hour after midnight UTC.
	s.AddJob("process_daily_overtime", time.Hour, false, func(ctx context.Context) error {
		now := time.Now().UTC()
		if now.Hour() != 0 {
			return nil
		}
		yesterday := now.AddDate(0, 0, -1)
		return overtimeService.ProcessDaily(ctx, dateOnly(yesterday))
	})

	s.AddJob("daily_anomaly_snapshot", time.Hour, false, func(ctx context.Context) error {
		now := time.Now().UTC()
		if now.Hour() != 0 {
			return nil
		}
		yesterday := dateOnly(now.AddDate(0, 0, -1))
		counts, err := anomalyService.Snapshot(ctx, yesterday)
		if err != nil {
			return err
		}
		if !counts.IsZero() {
			slog.Info("anomaly snapshot dispatched", "date", yesterday.Format(time.DateOnly))
		}
		return nil
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
