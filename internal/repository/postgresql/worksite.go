package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/worksite"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
)

type workSiteRepositoryImpl struct {
	db *database.DB
}

func NewWorkSiteRepository(db *database.DB) worksite.WorkSiteRepository {
	return &workSiteRepositoryImpl{db: db}
}

// GetByID implements worksite.WorkSiteRepository.
func (w *workSiteRepositoryImpl) GetByID(ctx context.Context, id string) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters, created_at, updated_at
		FROM work_sites
		WHERE id = $1
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, id).Scan(
		&site.ID, &site.Name, &site.Latitude, &site.Longitude,
		&site.RadiusMeters, &site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
		}
		return worksite.WorkSite{}, fmt.Errorf("failed to get work site %s: %w", id, err)
	}
	return site, nil
}

// ResolveForEmployee implements worksite.WorkSiteRepository. An active tour
// plan covering the date takes precedence over the employee's default site.
func (w *workSiteRepositoryImpl) ResolveForEmployee(ctx context.Context, employeeID string, date time.Time) (*worksite.WorkSite, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ws.id, ws.name, ws.latitude, ws.longitude, ws.radius_meters,
			ws.created_at, ws.updated_at
		FROM tour_plans tp
		JOIN work_sites ws ON ws.id = tp.work_site_id
		WHERE tp.employee_id = $1
			AND tp.status = $2
			AND tp.from_date <= $3
			AND tp.to_date >= $3
		ORDER BY tp.from_date DESC
		LIMIT 1
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, employeeID, worksite.TourPlanActive, date).Scan(
		&site.ID, &site.Name, &site.Latitude, &site.Longitude,
		&site.RadiusMeters, &site.CreatedAt, &site.UpdatedAt,
	)
	if err == nil {
		return &site, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to resolve tour plan for %s: %w", employeeID, err)
	}

	// No tour plan; fall back to the employee's default site.
	query = `
		SELECT ws.id, ws.name, ws.latitude, ws.longitude, ws.radius_meters,
			ws.created_at, ws.updated_at
		FROM employees e
		JOIN work_sites ws ON ws.id = e.default_work_site_id
		WHERE e.id = $1
	`

	err = q.QueryRow(ctx, query, employeeID).Scan(
		&site.ID, &site.Name, &site.Latitude, &site.Longitude,
		&site.RadiusMeters, &site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve default work site for %s: %w", employeeID, err)
	}
	return &site, nil
}
