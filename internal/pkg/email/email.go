package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending attendance alert emails
type EmailService interface {
	SendAnomalyAlert(to []string, data AnomalyAlertData) error
	SendDailySummary(to []string, data DailySummaryData) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// AnomalyAlertData fills the per-record anomaly alert template.
type AnomalyAlertData struct {
	EmployeeName    string
	EmployeeID      string
	Date            string
	LateEntry       bool
	EarlyExit       bool
	OutsideGeofence bool
	DeviceAnomaly   bool
	InTime          string
	OutTime         string
}

// SendAnomalyAlert mails an anomaly alert for one attendance record.
func (s *emailServiceImpl) SendAnomalyAlert(to []string, data AnomalyAlertData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "anomaly_alert.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Attendance Anomaly: %s - %s", data.EmployeeName, data.Date)
	return s.sendHTML(to, subject, body.String())
}

// DailySummaryData fills the daily anomaly summary template.
type DailySummaryData struct {
	Date               string
	GeofenceViolations int
	DeviceAnomalies    int
	LateEntries        int
	EarlyExits         int
}

// SendDailySummary mails the day's anomaly counts to HR.
func (s *emailServiceImpl) SendDailySummary(to []string, data DailySummaryData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "daily_summary.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Daily Attendance Anomaly Summary - %s", data.Date)
	return s.sendHTML(to, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}
	if len(to) == 0 {
		slog.Warn("No recipients configured, skipping email send", "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	for _, rcpt := range to {
		headers += fmt.Sprintf("To: %s\r\n", rcpt)
	}
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
