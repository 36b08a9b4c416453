package devicesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/pkg/device"
)

// initialLookback bounds the first fetch from a gateway that has never been
// synced in this process.
const initialLookback = 24 * time.Hour

// SyncService pulls attendance logs from biometric gateways and stores them
// as punch events.
type SyncService interface {
	SyncAll(ctx context.Context) error
}

type syncService struct {
	connectors   []device.Connector
	punchRepo    punch.PunchRepository
	employeeRepo employee.EmployeeRepository

	mu       sync.Mutex
	lastSync map[string]time.Time
}

func NewSyncService(
	connectors []device.Connector,
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
) SyncService {
	return &syncService{
		connectors:   connectors,
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		lastSync:     make(map[string]time.Time),
	}
}

// SyncAll fetches new logs from every configured gateway. A gateway that is
// unreachable is logged and skipped; its watermark does not advance, so the
// next cycle retries the same window.
func (s *syncService) SyncAll(ctx context.Context) error {
	var failed int
	for _, conn := range s.connectors {
		if err := s.syncConnector(ctx, conn); err != nil {
			failed++
			slog.Error("device sync failed", "gateway", conn.ID(), "error", err)
		}
	}
	if failed == len(s.connectors) && failed > 0 {
		return fmt.Errorf("all %d device gateways failed", failed)
	}
	return nil
}

func (s *syncService) syncConnector(ctx context.Context, conn device.Connector) error {
	since := s.watermark(conn.ID())

	logs, err := conn.FetchLogs(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch logs: %w", err)
	}

	imported, skipped := 0, 0
	var newest time.Time
	for _, raw := range logs {
		if raw.Timestamp.After(newest) {
			newest = raw.Timestamp
		}

		direction, ok := mapStatusCode(raw.StatusCode)
		if !ok {
			skipped++
			slog.Warn("unknown device status code",
				"gateway", conn.ID(), "status_code", raw.StatusCode,
				"device_user_id", raw.DeviceUserID)
			continue
		}

		emp, err := s.employeeRepo.GetByDeviceUserID(ctx, raw.DeviceUserID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				skipped++
				slog.Warn("device log for unknown employee",
					"gateway", conn.ID(), "device_user_id", raw.DeviceUserID)
				continue
			}
			return fmt.Errorf("resolve device user %s: %w", raw.DeviceUserID, err)
		}
		if !emp.IsActive() {
			skipped++
			slog.Warn("device log for inactive employee",
				"gateway", conn.ID(), "employee_id", emp.ID,
				"device_user_id", raw.DeviceUserID)
			continue
		}

		exists, err := s.punchRepo.ExistsAt(ctx, emp.ID, punch.SourceBiometric, raw.Timestamp)
		if err != nil {
			return fmt.Errorf("check existing punch: %w", err)
		}
		if exists {
			skipped++
			continue
		}

		if _, err := s.punchRepo.Create(ctx, punch.PunchEvent{
			Source:     punch.SourceBiometric,
			EmployeeID: emp.ID,
			Time:       raw.Timestamp,
			Direction:  direction,
		}); err != nil {
			return fmt.Errorf("store punch: %w", err)
		}
		imported++
	}

	if !newest.IsZero() {
		s.advance(conn.ID(), newest)
	}

	slog.Info("device sync cycle",
		"gateway", conn.ID(),
		"fetched", len(logs),
		"imported", imported,
		"skipped", skipped,
	)
	return nil
}

func (s *syncService) watermark(gatewayID string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.lastSync[gatewayID]; ok {
		return t
	}
	return time.Now().UTC().Add(-initialLookback)
}

func (s *syncService) advance(gatewayID string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.After(s.lastSync[gatewayID]) {
		s.lastSync[gatewayID] = t
	}
}

// mapStatusCode folds terminal status codes into a punch direction.
// Check-in, break-in and overtime-in all count as IN; check-out, break-out
// and overtime-out as OUT. The break scan recovers break intervals from the
// resulting OUT/IN alternation.
func mapStatusCode(code int) (punch.Direction, bool) {
	switch code {
	case device.StateCheckIn, device.StateBreakIn, device.StateOTIn:
		return punch.DirectionIn, true
	case device.StateCheckOut, device.StateBreakOut, device.StateOTOut:
		return punch.DirectionOut, true
	default:
		return "", false
	}
}
