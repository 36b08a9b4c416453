package runlog

import (
	"strings"
	"time"
)

// RunLog records one reconciliation batch invocation. Append-only: it is
// persisted exactly once, when the run closes.
type RunLog struct {
	ID       string
	RunAt    time.Time
	FromDate time.Time
	ToDate   time.Time
	Status   Status
	Total    int
	Errors   string
	ClosedAt time.Time
}

type Status string

const (
	// StatusSuccess: every employee-day reconciled without error.
	StatusSuccess Status = "Success"
	// StatusPartial: at least one employee-day failed, others succeeded.
	StatusPartial Status = "Partial"
	// StatusFailed: the employee set could not be enumerated at all.
	StatusFailed Status = "Failed"
)

// JoinErrors renders per-employee errors the way the run log stores them,
// one "employee: message" line each.
func JoinErrors(errs []string) string {
	return strings.Join(errs, "\n")
}
