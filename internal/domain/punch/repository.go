package punch

import (
	"context"
	"time"
)

type PunchRepository interface {
	// Create stores a new punch event
	Create(ctx context.Context, p PunchEvent) (PunchEvent, error)

	// ListEmployeesWithUnprocessed returns the distinct employee IDs having
	// at least one unprocessed punch in [from, to], inclusive of the full
	// end day
	ListEmployeesWithUnprocessed(ctx context.Context, from, to time.Time) ([]string, error)

	// ListUnprocessedForDay returns the employee's unprocessed punches for
	// the calendar day, ordered by time then source then id
	ListUnprocessedForDay(ctx context.Context, employeeID string, day time.Time) ([]PunchEvent, error)

	// ListForDay returns all of the employee's punches for the day,
	// processed or not, ordered by time. Break detection needs the full
	// source-level sequence.
	ListForDay(ctx context.Context, employeeID string, day time.Time) ([]PunchEvent, error)

	// MarkProcessed flags the punches as reconciled under the batch tag
	MarkProcessed(ctx context.Context, ids []string, batchTag string) error

	// ExistsAt reports whether a punch from the source already exists for
	// the employee at the exact timestamp. Used by device sync to skip
	// already-imported logs.
	ExistsAt(ctx context.Context, employeeID string, source Source, at time.Time) (bool, error)
}
