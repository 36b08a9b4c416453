package runlog

import "context"

type RunLogRepository interface {
	// Append persists a closed run log
	Append(ctx context.Context, log RunLog) (RunLog, error)

	// GetByID retrieves a run log by ID
	GetByID(ctx context.Context, id string) (RunLog, error)

	// List retrieves run logs newest first with pagination
	List(ctx context.Context, page, limit int) ([]RunLog, int64, error)
}
