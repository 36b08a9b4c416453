package shift

import "context"

type ShiftRepository interface {
	// GetByID retrieves a shift type by ID
	GetByID(ctx context.Context, id string) (ShiftType, error)

	// GetForEmployee returns the employee's assigned shift, or nil when no
	// shift is assigned (a skip condition, not an error)
	GetForEmployee(ctx context.Context, employeeID string) (*ShiftType, error)
}
