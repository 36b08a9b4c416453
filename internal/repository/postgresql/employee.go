package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, full_name, email, password_hash, role, reports_to,
	default_work_site_id, default_shift_id, device_user_id, status,
	google_id, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.PasswordHash, &emp.Role,
		&emp.ReportsTo, &emp.DefaultWorkSiteID, &emp.DefaultShiftID,
		&emp.DeviceUserID, &emp.Status, &emp.GoogleID,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE LOWER(email) = LOWER($1)`

	emp, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return emp, nil
}

// GetByDeviceUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByDeviceUserID(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE device_user_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, deviceUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device user id %s: %w", deviceUserID, err)
	}
	return emp, nil
}

// GetManagerEmails implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetManagerEmails(ctx context.Context, employeeID string) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT m.email
		FROM employees e
		JOIN employees m ON m.id = e.reports_to
		WHERE e.id = $1 AND m.status = $2
	`

	rows, err := q.Query(ctx, query, employeeID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager emails for %s: %w", employeeID, err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return emails, nil
}
