package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/worksite"
	"github.com/winco-group/attendance-backend-go/internal/pkg/fingerprint"
	"github.com/winco-group/attendance-backend-go/internal/pkg/geo"
)

// CheckinService records clock-in and clock-out punches from the mobile app.
type CheckinService interface {
	Checkin(ctx context.Context, employeeID string, req punch.MobileCheckinRequest) (punch.MobileCheckinResponse, error)
}

type checkinService struct {
	punchRepo    punch.PunchRepository
	employeeRepo employee.EmployeeRepository
	workSiteRepo worksite.WorkSiteRepository
}

func NewCheckinService(
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	workSiteRepo worksite.WorkSiteRepository,
) CheckinService {
	return &checkinService{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		workSiteRepo: workSiteRepo,
	}
}

// Checkin validates the request, evaluates the geofence against the
// employee's effective work site and stores the punch. An out-of-fence
// location is accepted and flagged, never rejected; reconciliation turns
// the flag into an anomaly.
func (s *checkinService) Checkin(ctx context.Context, employeeID string, req punch.MobileCheckinRequest) (punch.MobileCheckinResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.MobileCheckinResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return punch.MobileCheckinResponse{}, err
	}
	if !emp.IsActive() {
		return punch.MobileCheckinResponse{}, employee.ErrEmployeeInactive
	}

	now := time.Now().UTC()

	site, err := s.workSiteRepo.ResolveForEmployee(ctx, employeeID, now)
	if err != nil && !errors.Is(err, worksite.ErrWorkSiteNotFound) {
		return punch.MobileCheckinResponse{}, fmt.Errorf("resolve work site: %w", err)
	}
	withinGeofence := geo.WithinFence(site, req.Latitude, req.Longitude)

	hash := fingerprint.Hash(req.FingerprintRaw, req.UserAgent, req.SourceIP)

	p := punch.PunchEvent{
		Source:            punch.SourceMobile,
		EmployeeID:        employeeID,
		Time:              now,
		Direction:         punch.Direction(req.Direction),
		WithinGeofence:    &withinGeofence,
		DeviceFingerprint: &hash,
		Latitude:          &req.Latitude,
		Longitude:         &req.Longitude,
		GPSAccuracy:       req.GPSAccuracy,
	}
	if site != nil {
		p.WorkSiteID = &site.ID
	}
	if req.SourceIP != "" {
		p.IPAddress = &req.SourceIP
	}
	if req.UserAgent != "" {
		p.UserAgent = &req.UserAgent
	}

	created, err := s.punchRepo.Create(ctx, p)
	if err != nil {
		return punch.MobileCheckinResponse{}, fmt.Errorf("store punch: %w", err)
	}

	if !withinGeofence {
		slog.Info("mobile punch outside geofence",
			"employee_id", employeeID,
			"direction", req.Direction,
			"latitude", req.Latitude,
			"longitude", req.Longitude,
		)
	}

	resp := punch.MobileCheckinResponse{
		PunchID:        created.ID,
		Direction:      string(created.Direction),
		Time:           created.Time.Format(time.RFC3339),
		WithinGeofence: withinGeofence,
	}
	if site != nil {
		resp.WorkSiteID = &site.ID
	}
	return resp, nil
}
