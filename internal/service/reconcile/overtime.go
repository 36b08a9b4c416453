package reconcile

import (
	"math"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
)

// Round2 rounds to two decimal places, the precision all derived hour
// figures are stored at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OvertimeHours computes the payable overtime for a day.
//
// Raw overtime is actual hours (OUT minus IN) minus the shift's expected
// hours, floored at zero. The shift's overtime threshold is then
// subtracted, again floored at zero, and the remainder is scaled by the
// overtime multiplier. Zero when either anchor or the shift's expected
// hours are missing.
func OvertimeHours(inTime, outTime *time.Time, shiftType shift.ShiftType) float64 {
	if inTime == nil || outTime == nil {
		return 0
	}
	expected, ok := shiftType.ExpectedHours()
	if !ok {
		return 0
	}

	overtime := outTime.Sub(*inTime).Hours() - expected
	if overtime < 0 {
		overtime = 0
	}
	if shiftType.OvertimeThreshold != nil {
		overtime -= *shiftType.OvertimeThreshold
		if overtime < 0 {
			overtime = 0
		}
	}
	if shiftType.OvertimeMultiplier != nil {
		overtime *= *shiftType.OvertimeMultiplier
	}
	return Round2(overtime)
}

// BreakHours sums the gaps between each OUT punch and the next IN punch.
//
// The scan runs over the day's full time-ordered punch list, not the
// deduplicated one, so short step-outs that the dedup window would merge
// still count. An OUT while a break is already open is ignored, and a
// trailing OUT with no closing IN contributes nothing.
func BreakHours(punches []punch.PunchEvent) float64 {
	var total float64
	var breakStart *time.Time
	for i := range punches {
		p := punches[i]
		switch p.Direction {
		case punch.DirectionOut:
			if breakStart == nil {
				t := p.Time
				breakStart = &t
			}
		case punch.DirectionIn:
			if breakStart != nil {
				total += p.Time.Sub(*breakStart).Hours()
				breakStart = nil
			}
		}
	}
	return Round2(total)
}
