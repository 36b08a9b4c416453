package attendance

import "time"

// Record is the single authoritative attendance row per (employee, date).
// Created on the first reconciled punch of the day and mutated in place by
// later runs; never duplicated.
type Record struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	Status          Status
	InTime          *time.Time
	OutTime         *time.Time
	LateEntry       bool
	EarlyExit       bool
	OutsideGeofence bool
	DeviceAnomaly   bool
	WorkingHours    *float64
	OvertimeHours   *float64
	BreakHours      *float64
	NetWorkingHours *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// HasAnomaly reports whether any anomaly flag is set on the record.
func (r Record) HasAnomaly() bool {
	return r.OutsideGeofence || r.DeviceAnomaly || r.LateEntry || r.EarlyExit
}

// AnomalyCounts aggregates the anomaly flags across one calendar day.
type AnomalyCounts struct {
	GeofenceViolations int
	DeviceAnomalies    int
	LateEntries        int
	EarlyExits         int
}

// IsZero reports whether no anomalies were recorded.
func (c AnomalyCounts) IsZero() bool {
	return c.GeofenceViolations == 0 && c.DeviceAnomalies == 0 &&
		c.LateEntries == 0 && c.EarlyExits == 0
}
