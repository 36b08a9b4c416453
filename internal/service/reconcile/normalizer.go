package reconcile

import (
	"sort"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
)

// DefaultDedupWindow collapses double-taps and duplicate device reports.
const DefaultDedupWindow = 60 * time.Second

// Normalize merges an employee-day's punches from all sources into one
// ordered, deduplicated sequence.
//
// Ordering is a stable sort by timestamp; ties break by source (biometric
// before mobile) and then by punch ID, so the output is deterministic for
// any input order. A punch is dropped when its direction equals the last
// kept punch's direction and it falls within the dedup window of it.
// Direction changes are always kept regardless of spacing.
//
// Every output element is one of the input elements, unmodified, so callers
// can trace each back for processed-marking. Normalize(Normalize(x)) ==
// Normalize(x).
func Normalize(punches []punch.PunchEvent, window time.Duration) []punch.PunchEvent {
	if len(punches) == 0 {
		return []punch.PunchEvent{}
	}

	sorted := make([]punch.PunchEvent, len(punches))
	copy(sorted, punches)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		if a.Source != b.Source {
			return a.Source == punch.SourceBiometric
		}
		return a.ID < b.ID
	})

	deduped := make([]punch.PunchEvent, 0, len(sorted))
	deduped = append(deduped, sorted[0])
	for _, p := range sorted[1:] {
		last := deduped[len(deduped)-1]
		if p.Direction == last.Direction && p.Time.Sub(last.Time) <= window {
			continue
		}
		deduped = append(deduped, p)
	}

	return deduped
}
