package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
)

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

const punchColumns = `
	id, source, employee_id, punch_time, direction, within_geofence,
	device_fingerprint, work_site_id, latitude, longitude, gps_accuracy,
	ip_address, user_agent, processed, batch_tag, created_at
`

// Create implements punch.PunchRepository.
func (p *punchRepositoryImpl) Create(ctx context.Context, event punch.PunchEvent) (punch.PunchEvent, error) {
	q := GetQuerier(ctx, p.db)

	if event.ID == "" {
		event.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO punches (
			id, source, employee_id, punch_time, direction, within_geofence,
			device_fingerprint, work_site_id, latitude, longitude,
			gps_accuracy, ip_address, user_agent, processed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, false)
		RETURNING ` + punchColumns

	row := q.QueryRow(ctx, query,
		event.ID, event.Source, event.EmployeeID, event.Time, event.Direction,
		event.WithinGeofence, event.DeviceFingerprint, event.WorkSiteID,
		event.Latitude, event.Longitude, event.GPSAccuracy,
		event.IPAddress, event.UserAgent,
	)

	created, err := scanPunch(row)
	if err != nil {
		return punch.PunchEvent{}, fmt.Errorf("failed to create punch: %w", err)
	}
	return created, nil
}

// ListEmployeesWithUnprocessed implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListEmployeesWithUnprocessed(ctx context.Context, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT DISTINCT employee_id
		FROM punches
		WHERE processed = false AND punch_time BETWEEN $1 AND $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with unprocessed punches: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListUnprocessedForDay implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListUnprocessedForDay(ctx context.Context, employeeID string, day time.Time) ([]punch.PunchEvent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE employee_id = $1
			AND processed = false
			AND punch_time >= $2
			AND punch_time < $3
		ORDER BY punch_time, source, id
	`

	start, end := dayBounds(day)
	return p.queryPunches(ctx, q, query, employeeID, start, end)
}

// ListForDay implements punch.PunchRepository.
func (p *punchRepositoryImpl) ListForDay(ctx context.Context, employeeID string, day time.Time) ([]punch.PunchEvent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + punchColumns + `
		FROM punches
		WHERE employee_id = $1
			AND punch_time >= $2
			AND punch_time < $3
		ORDER BY punch_time, source, id
	`

	start, end := dayBounds(day)
	return p.queryPunches(ctx, q, query, employeeID, start, end)
}

// MarkProcessed implements punch.PunchRepository.
func (p *punchRepositoryImpl) MarkProcessed(ctx context.Context, ids []string, batchTag string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE punches
		SET processed = true, batch_tag = $1
		WHERE id = ANY($2)
	`

	if _, err := q.Exec(ctx, query, batchTag, ids); err != nil {
		return fmt.Errorf("failed to mark punches processed: %w", err)
	}
	return nil
}

// ExistsAt implements punch.PunchRepository.
func (p *punchRepositoryImpl) ExistsAt(ctx context.Context, employeeID string, source punch.Source, at time.Time) (bool, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM punches
			WHERE employee_id = $1 AND source = $2 AND punch_time = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, source, at).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check punch existence: %w", err)
	}
	return exists, nil
}

func (p *punchRepositoryImpl) queryPunches(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]punch.PunchEvent, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.PunchEvent
	for rows.Next() {
		event, err := scanPunch(rows)
		if err != nil {
			return nil, err
		}
		punches = append(punches, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPunch(row rowScanner) (punch.PunchEvent, error) {
	var event punch.PunchEvent
	err := row.Scan(
		&event.ID, &event.Source, &event.EmployeeID, &event.Time,
		&event.Direction, &event.WithinGeofence, &event.DeviceFingerprint,
		&event.WorkSiteID, &event.Latitude, &event.Longitude,
		&event.GPSAccuracy, &event.IPAddress, &event.UserAgent,
		&event.Processed, &event.BatchTag, &event.CreatedAt,
	)
	return event, err
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
