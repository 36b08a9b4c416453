package reconcile

import (
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
)

// Policy selects how working hours are derived from a day's punches.
type Policy string

const (
	// PolicyFirstLast spans first IN to last OUT.
	PolicyFirstLast Policy = "first-last"
	// PolicyPaired sums each matched IN/OUT cycle.
	PolicyPaired Policy = "paired"
)

// Classification holds the attendance anchors and timing flags derived for
// one employee-day.
type Classification struct {
	InTime    *time.Time
	OutTime   *time.Time
	LateEntry bool
	EarlyExit bool
}

// Classify picks the earliest IN punch and the latest OUT punch as the
// day's anchors and compares their time-of-day against the shift bounds.
//
// LateEntry is set when the IN anchor's time-of-day is after the shift
// start; EarlyExit when the OUT anchor's time-of-day is before the shift
// end. A flag stays false when its anchor or its shift bound is missing.
// Either anchor may be nil independently (OUT-only or IN-only days).
func Classify(punches []punch.PunchEvent, shiftType shift.ShiftType) Classification {
	var in, out *time.Time
	for i := range punches {
		p := punches[i]
		switch p.Direction {
		case punch.DirectionIn:
			if in == nil || p.Time.Before(*in) {
				t := p.Time
				in = &t
			}
		case punch.DirectionOut:
			if out == nil || p.Time.After(*out) {
				t := p.Time
				out = &t
			}
		}
	}

	cls := Classification{InTime: in, OutTime: out}
	if in != nil && shiftType.StartTime != nil {
		cls.LateEntry = secondsOfDay(*in) > secondsOfDay(*shiftType.StartTime)
	}
	if out != nil && shiftType.EndTime != nil {
		cls.EarlyExit = secondsOfDay(*out) < secondsOfDay(*shiftType.EndTime)
	}
	return cls
}

// PairedWorkedHours sums the duration of each IN..OUT cycle in order.
// An OUT without an open IN is ignored, as is a trailing unclosed IN.
func PairedWorkedHours(punches []punch.PunchEvent) float64 {
	var total float64
	var open *time.Time
	for i := range punches {
		p := punches[i]
		switch p.Direction {
		case punch.DirectionIn:
			if open == nil {
				t := p.Time
				open = &t
			}
		case punch.DirectionOut:
			if open != nil {
				total += p.Time.Sub(*open).Hours()
				open = nil
			}
		}
	}
	return Round2(total)
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
