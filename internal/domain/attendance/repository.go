package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert creates or updates the unique record for (employee, date)
	Upsert(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate returns the record for the key, or nil
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// List retrieves records with filters and pagination (HR view)
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)

	// ListMine retrieves records for one employee with pagination
	ListMine(ctx context.Context, employeeID string, filter ListFilter) ([]Record, int64, error)

	// ListPresentByDateRange returns Present records in [from, to] for an
	// employee, oldest first
	ListPresentByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListPresentByDate returns all Present records on a date
	ListPresentByDate(ctx context.Context, date time.Time) ([]Record, error)

	// UpdateDerivedHours persists recomputed overtime, break and net
	// working hours for a record
	UpdateDerivedHours(ctx context.Context, id string, overtime, breakHours, netHours *float64) error

	// AnomalyCounts aggregates anomaly flags across one calendar day
	AnomalyCounts(ctx context.Context, date time.Time) (AnomalyCounts, error)
}
