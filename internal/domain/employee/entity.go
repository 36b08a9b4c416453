package employee

import "time"

type Employee struct {
	ID                string
	FullName          string
	Email             string
	PasswordHash      *string
	Role              Role
	ReportsTo         *string
	DefaultWorkSiteID *string
	DefaultShiftID    *string
	DeviceUserID      *string
	Status            Status
	GoogleID          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsActive reports whether the employee may register new punches.
func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
