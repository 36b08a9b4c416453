package shift

import "time"

// ShiftType defines the expected working window for a day. StartTime and
// EndTime carry only a time of day (their date part is the zero date). Either
// may be nil, which disables the late/early flag it would drive.
//
// Same-day shifts only: an end time at or before the start time denotes an
// overnight shift, which this engine does not reconcile.
type ShiftType struct {
	ID                 string
	Name               string
	StartTime          *time.Time
	EndTime            *time.Time
	OvertimeThreshold  *float64
	OvertimeMultiplier *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ExpectedHours returns the scheduled shift length in hours. The second
// return is false when either boundary is missing.
func (s ShiftType) ExpectedHours() (float64, bool) {
	if s.StartTime == nil || s.EndTime == nil {
		return 0, false
	}
	return s.EndTime.Sub(*s.StartTime).Hours(), true
}

// IsOvernight reports whether the shift crosses midnight.
func (s ShiftType) IsOvernight() bool {
	if s.StartTime == nil || s.EndTime == nil {
		return false
	}
	return !s.EndTime.After(*s.StartTime)
}
