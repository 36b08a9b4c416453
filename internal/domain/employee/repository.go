package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves an employee by login email
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// GetByDeviceUserID resolves the employee enrolled on a biometric
	// terminal under the given device user ID
	GetByDeviceUserID(ctx context.Context, deviceUserID string) (Employee, error)

	// GetManagerEmails returns the alert recipients for an employee: their
	// reporting manager's email when one is set
	GetManagerEmails(ctx context.Context, employeeID string) ([]string, error)
}
