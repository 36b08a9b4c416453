package anomaly

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/domain/notification"
)

// AnomalyService produces the daily anomaly digest for HR.
type AnomalyService interface {
	// Snapshot aggregates the date's anomaly flags and sends the summary
	// when anything was flagged
	Snapshot(ctx context.Context, date time.Time) (attendance.AnomalyCounts, error)
}

type anomalyService struct {
	attendanceRepo attendance.AttendanceRepository
	notifier       notification.Sender
}

func NewAnomalyService(attendanceRepo attendance.AttendanceRepository, notifier notification.Sender) AnomalyService {
	return &anomalyService{
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
	}
}

func (s *anomalyService) Snapshot(ctx context.Context, date time.Time) (attendance.AnomalyCounts, error) {
	counts, err := s.attendanceRepo.AnomalyCounts(ctx, date)
	if err != nil {
		return attendance.AnomalyCounts{}, fmt.Errorf("aggregate anomalies: %w", err)
	}

	if counts.IsZero() {
		slog.Info("no anomalies for date", "date", date.Format(time.DateOnly))
		return counts, nil
	}

	if s.notifier != nil {
		if err := s.notifier.SendDailySummary(ctx, date, counts); err != nil {
			return counts, fmt.Errorf("send daily summary: %w", err)
		}
	}

	slog.Info("daily anomaly snapshot sent",
		"date", date.Format(time.DateOnly),
		"geofence_violations", counts.GeofenceViolations,
		"device_anomalies", counts.DeviceAnomalies,
		"late_entries", counts.LateEntries,
		"early_exits", counts.EarlyExits,
	)
	return counts, nil
}
