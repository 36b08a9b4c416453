package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, employee_id, attendance_date, status, in_time, out_time,
	late_entry, early_exit, outside_geofence, device_anomaly,
	working_hours, overtime_hours, break_hours, net_working_hours,
	created_at, updated_at
`

func scanRecord(row rowScanner) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.Status, &r.InTime, &r.OutTime,
		&r.LateEntry, &r.EarlyExit, &r.OutsideGeofence, &r.DeviceAnomaly,
		&r.WorkingHours, &r.OvertimeHours, &r.BreakHours, &r.NetWorkingHours,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Upsert implements attendance.AttendanceRepository. The unique index on
// (employee_id, attendance_date) makes reconciliation reruns converge on
// one row per employee-day.
func (a *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, attendance_date, status, in_time, out_time,
			late_entry, early_exit, outside_geofence, device_anomaly,
			working_hours, overtime_hours, break_hours, net_working_hours
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE SET
			status = EXCLUDED.status,
			in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			late_entry = EXCLUDED.late_entry,
			early_exit = EXCLUDED.early_exit,
			outside_geofence = EXCLUDED.outside_geofence,
			device_anomaly = EXCLUDED.device_anomaly,
			working_hours = EXCLUDED.working_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			break_hours = EXCLUDED.break_hours,
			net_working_hours = EXCLUDED.net_working_hours,
			updated_at = NOW()
		RETURNING ` + attendanceColumns

	row := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.Status,
		record.InTime, record.OutTime, record.LateEntry, record.EarlyExit,
		record.OutsideGeofence, record.DeviceAnomaly, record.WorkingHours,
		record.OvertimeHours, record.BreakHours, record.NetWorkingHours,
	)

	saved, err := scanRecord(row)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return saved, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND attendance_date = $2
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return &record, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	filter.Normalize()
	q := GetQuerier(ctx, a.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.FromDate != nil {
		where += fmt.Sprintf(" AND ar.attendance_date >= $%d", argPos)
		args = append(args, *filter.FromDate)
		argPos++
	}
	if filter.ToDate != nil {
		where += fmt.Sprintf(" AND ar.attendance_date <= $%d", argPos)
		args = append(args, *filter.ToDate)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND ar.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records ar` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ar.id, ar.employee_id, ar.attendance_date, ar.status,
			ar.in_time, ar.out_time, ar.late_entry, ar.early_exit,
			ar.outside_geofence, ar.device_anomaly, ar.working_hours,
			ar.overtime_hours, ar.break_hours, ar.net_working_hours,
			ar.created_at, ar.updated_at, e.full_name
		FROM attendance_records ar
		JOIN employees e ON e.id = ar.employee_id` + where + fmt.Sprintf(`
		ORDER BY ar.attendance_date DESC, e.full_name
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var r attendance.Record
		err := rows.Scan(
			&r.ID, &r.EmployeeID, &r.Date, &r.Status, &r.InTime, &r.OutTime,
			&r.LateEntry, &r.EarlyExit, &r.OutsideGeofence, &r.DeviceAnomaly,
			&r.WorkingHours, &r.OvertimeHours, &r.BreakHours, &r.NetWorkingHours,
			&r.CreatedAt, &r.UpdatedAt, &r.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListMine implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListMine(ctx context.Context, employeeID string, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	filter.Normalize()
	q := GetQuerier(ctx, a.db)

	where := " WHERE employee_id = $1"
	args := []interface{}{employeeID}
	argPos := 2

	if filter.FromDate != nil {
		where += fmt.Sprintf(" AND attendance_date >= $%d", argPos)
		args = append(args, *filter.FromDate)
		argPos++
	}
	if filter.ToDate != nil {
		where += fmt.Sprintf(" AND attendance_date <= $%d", argPos)
		args = append(args, *filter.ToDate)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_records` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records` + where + fmt.Sprintf(`
		ORDER BY attendance_date DESC
		LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	records, err := a.queryRecords(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListPresentByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListPresentByDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
			AND status = $2
			AND attendance_date BETWEEN $3 AND $4
		ORDER BY attendance_date
	`

	return a.queryRecords(ctx, q, query, employeeID, attendance.StatusPresent, from, to)
}

// ListPresentByDate implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) ListPresentByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE status = $1 AND attendance_date = $2
		ORDER BY employee_id
	`

	return a.queryRecords(ctx, q, query, attendance.StatusPresent, date)
}

// UpdateDerivedHours implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) UpdateDerivedHours(ctx context.Context, id string, overtime, breakHours, netHours *float64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET overtime_hours = $1, break_hours = $2, net_working_hours = $3,
			updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, overtime, breakHours, netHours, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update derived hours for %s: %w", id, err)
	}
	return nil
}

// AnomalyCounts implements attendance.AttendanceRepository.
func (a *attendanceRepositoryImpl) AnomalyCounts(ctx context.Context, date time.Time) (attendance.AnomalyCounts, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE outside_geofence),
			COUNT(*) FILTER (WHERE device_anomaly),
			COUNT(*) FILTER (WHERE late_entry),
			COUNT(*) FILTER (WHERE early_exit)
		FROM attendance_records
		WHERE attendance_date = $1
	`

	var counts attendance.AnomalyCounts
	err := q.QueryRow(ctx, query, date).Scan(
		&counts.GeofenceViolations, &counts.DeviceAnomalies,
		&counts.LateEntries, &counts.EarlyExits,
	)
	if err != nil {
		return attendance.AnomalyCounts{}, fmt.Errorf("failed to aggregate anomaly counts: %w", err)
	}
	return counts, nil
}

func (a *attendanceRepositoryImpl) queryRecords(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
