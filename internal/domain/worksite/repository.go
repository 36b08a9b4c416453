package worksite

import (
	"context"
	"time"
)

type WorkSiteRepository interface {
	// GetByID retrieves a work site by its ID
	GetByID(ctx context.Context, id string) (WorkSite, error)

	// ResolveForEmployee returns the effective work site for an employee on
	// the given date: an active tour plan covering the date wins over the
	// employee's default site. Returns nil when neither is configured.
	ResolveForEmployee(ctx context.Context, employeeID string, date time.Time) (*WorkSite, error)
}
