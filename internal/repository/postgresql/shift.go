package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftType, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, name, start_time, end_time, overtime_threshold,
			overtime_multiplier, created_at, updated_at
		FROM shift_types
		WHERE id = $1
	`

	var st shift.ShiftType
	err := q.QueryRow(ctx, query, id).Scan(
		&st.ID, &st.Name, &st.StartTime, &st.EndTime,
		&st.OvertimeThreshold, &st.OvertimeMultiplier,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftType{}, shift.ErrShiftNotFound
		}
		return shift.ShiftType{}, fmt.Errorf("failed to get shift type %s: %w", id, err)
	}
	return st, nil
}

// GetForEmployee implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetForEmployee(ctx context.Context, employeeID string) (*shift.ShiftType, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT st.id, st.name, st.start_time, st.end_time,
			st.overtime_threshold, st.overtime_multiplier,
			st.created_at, st.updated_at
		FROM employees e
		JOIN shift_types st ON st.id = e.default_shift_id
		WHERE e.id = $1
	`

	var st shift.ShiftType
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&st.ID, &st.Name, &st.StartTime, &st.EndTime,
		&st.OvertimeThreshold, &st.OvertimeMultiplier,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		// No row either way: unknown employee or no shift assigned. Both
		// are skip conditions for the caller, not failures.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift for employee %s: %w", employeeID, err)
	}
	return &st, nil
}
