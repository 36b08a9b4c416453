package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/domain/notification"
	"github.com/winco-group/attendance-backend-go/internal/pkg/email"
	"github.com/winco-group/attendance-backend-go/internal/pkg/sse"
)

type notificationService struct {
	emailService email.EmailService
	hub          *sse.Hub
	employeeRepo employee.EmployeeRepository
	hrEmails     []string
}

// NewNotificationService wires anomaly alerts to email and the SSE hub.
// hrEmails is the static HR distribution list; the employee's manager is
// resolved per alert.
func NewNotificationService(
	emailService email.EmailService,
	hub *sse.Hub,
	employeeRepo employee.EmployeeRepository,
	hrEmails []string,
) notification.Sender {
	return &notificationService{
		emailService: emailService,
		hub:          hub,
		employeeRepo: employeeRepo,
		hrEmails:     hrEmails,
	}
}

func (s *notificationService) NotifyAnomaly(ctx context.Context, record attendance.Record) error {
	recipients := append([]string{}, s.hrEmails...)
	managerEmails, err := s.employeeRepo.GetManagerEmails(ctx, record.EmployeeID)
	if err != nil {
		// Manager lookup failing should not swallow the HR alert.
		slog.Warn("manager email lookup failed",
			"employee_id", record.EmployeeID, "error", err)
	} else {
		recipients = append(recipients, managerEmails...)
	}

	data := email.AnomalyAlertData{
		EmployeeID:      record.EmployeeID,
		Date:            record.Date.Format(time.DateOnly),
		LateEntry:       record.LateEntry,
		EarlyExit:       record.EarlyExit,
		OutsideGeofence: record.OutsideGeofence,
		DeviceAnomaly:   record.DeviceAnomaly,
	}
	if record.EmployeeName != nil {
		data.EmployeeName = *record.EmployeeName
	} else {
		data.EmployeeName = record.EmployeeID
	}
	if record.InTime != nil {
		data.InTime = record.InTime.Format("15:04:05")
	}
	if record.OutTime != nil {
		data.OutTime = record.OutTime.Format("15:04:05")
	}

	if s.hub != nil {
		s.hub.Broadcast(sse.Event{
			Event: sse.EventAnomalyAlert,
			Data:  attendance.ToResponse(record),
		})
	}

	return s.emailService.SendAnomalyAlert(recipients, data)
}

func (s *notificationService) SendDailySummary(ctx context.Context, date time.Time, counts attendance.AnomalyCounts) error {
	data := email.DailySummaryData{
		Date:               date.Format(time.DateOnly),
		GeofenceViolations: counts.GeofenceViolations,
		DeviceAnomalies:    counts.DeviceAnomalies,
		LateEntries:        counts.LateEntries,
		EarlyExits:         counts.EarlyExits,
	}

	if s.hub != nil {
		s.hub.Broadcast(sse.Event{Event: sse.EventDailySummary, Data: data})
	}

	return s.emailService.SendDailySummary(s.hrEmails, data)
}
