package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/runlog"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
)

type runLogRepositoryImpl struct {
	db *database.DB
}

func NewRunLogRepository(db *database.DB) runlog.RunLogRepository {
	return &runLogRepositoryImpl{db: db}
}

const runLogColumns = `
	id, run_at, from_date, to_date, status, total, errors, closed_at
`

func scanRunLog(row rowScanner) (runlog.RunLog, error) {
	var log runlog.RunLog
	err := row.Scan(
		&log.ID, &log.RunAt, &log.FromDate, &log.ToDate,
		&log.Status, &log.Total, &log.Errors, &log.ClosedAt,
	)
	return log, err
}

// Append implements runlog.RunLogRepository.
func (r *runLogRepositoryImpl) Append(ctx context.Context, log runlog.RunLog) (runlog.RunLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reconciliation_run_logs (
			id, run_at, from_date, to_date, status, total, errors, closed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + runLogColumns

	row := q.QueryRow(ctx, query,
		log.ID, log.RunAt, log.FromDate, log.ToDate,
		log.Status, log.Total, log.Errors, log.ClosedAt,
	)

	saved, err := scanRunLog(row)
	if err != nil {
		return runlog.RunLog{}, fmt.Errorf("failed to append run log: %w", err)
	}
	return saved, nil
}

// GetByID implements runlog.RunLogRepository.
func (r *runLogRepositoryImpl) GetByID(ctx context.Context, id string) (runlog.RunLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runLogColumns + ` FROM reconciliation_run_logs WHERE id = $1`

	log, err := scanRunLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runlog.RunLog{}, runlog.ErrRunLogNotFound
		}
		return runlog.RunLog{}, fmt.Errorf("failed to get run log %s: %w", id, err)
	}
	return log, nil
}

// List implements runlog.RunLogRepository.
func (r *runLogRepositoryImpl) List(ctx context.Context, page, limit int) ([]runlog.RunLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM reconciliation_run_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count run logs: %w", err)
	}

	query := `
		SELECT ` + runLogColumns + `
		FROM reconciliation_run_logs
		ORDER BY run_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list run logs: %w", err)
	}
	defer rows.Close()

	var logs []runlog.RunLog
	for rows.Next() {
		log, err := scanRunLog(rows)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, log)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
