package punch

import "time"

type Source string

const (
	SourceBiometric Source = "biometric"
	SourceMobile    Source = "mobile"
)

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// PunchEvent is a single clock event. Immutable once created except for the
// Processed flag, which the reconciliation runner sets exactly once after the
// corresponding attendance write has committed.
type PunchEvent struct {
	ID                string
	Source            Source
	EmployeeID        string
	Time              time.Time
	Direction         Direction
	WithinGeofence    *bool
	DeviceFingerprint *string
	WorkSiteID        *string
	Latitude          *float64
	Longitude         *float64
	GPSAccuracy       *float64
	IPAddress         *string
	UserAgent         *string
	Processed         bool
	BatchTag          *string
	CreatedAt         time.Time
}
