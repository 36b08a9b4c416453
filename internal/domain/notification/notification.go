package notification

import (
	"context"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/attendance"
)

// Sender delivers attendance alerts. The reconciliation engine hands over a
// fully-formed record; formatting and delivery belong to the implementation.
type Sender interface {
	// NotifyAnomaly alerts the employee's manager and HR about a record
	// with at least one anomaly flag set
	NotifyAnomaly(ctx context.Context, record attendance.Record) error

	// SendDailySummary mails the day's anomaly counts to HR
	SendDailySummary(ctx context.Context, date time.Time, counts attendance.AnomalyCounts) error
}
