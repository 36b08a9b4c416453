package device

import (
	"context"
	"time"
)

// RawLog is one attendance log as reported by a biometric terminal. The
// device user ID is the terminal's own enrollment number, not an employee ID.
type RawLog struct {
	DeviceUserID string    `json:"device_user_id"`
	Timestamp    time.Time `json:"timestamp"`
	StatusCode   int       `json:"status_code"`
}

// Connector is the capability a terminal vendor integration must provide.
// One implementation per vendor/transport; the sync service is agnostic to
// how the logs are obtained.
type Connector interface {
	// ID identifies the terminal, for logging and punch attribution
	ID() string

	// FetchLogs returns attendance logs recorded at or after since
	FetchLogs(ctx context.Context, since time.Time) ([]RawLog, error)
}
