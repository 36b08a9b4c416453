package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
)

func f64(v float64) *float64 { return &v }

func TestOvertimeHours(t *testing.T) {
	eightHourShift := shift.ShiftType{
		StartTime: timeOfDay(9, 0),
		EndTime:   timeOfDay(17, 0),
	}

	t.Run("plain overtime", func(t *testing.T) {
		in := at(9, 0, 0)
		out := at(18, 30, 0) // 9.5h actual vs 8h expected
		assert.Equal(t, 1.5, OvertimeHours(&in, &out, eightHourShift))
	})

	t.Run("no overtime when under expected hours", func(t *testing.T) {
		in := at(9, 0, 0)
		out := at(16, 0, 0)
		assert.Equal(t, 0.0, OvertimeHours(&in, &out, eightHourShift))
	})

	t.Run("threshold is subtracted before the multiplier", func(t *testing.T) {
		s := eightHourShift
		s.OvertimeThreshold = f64(0.5)
		s.OvertimeMultiplier = f64(1.5)

		in := at(9, 0, 0)
		out := at(18, 30, 0) // raw 1.5h, minus 0.5 threshold, times 1.5
		assert.Equal(t, 1.5, OvertimeHours(&in, &out, s))
	})

	t.Run("threshold floors at zero", func(t *testing.T) {
		s := eightHourShift
		s.OvertimeThreshold = f64(2.0)

		in := at(9, 0, 0)
		out := at(18, 0, 0) // raw 1h under a 2h threshold
		assert.Equal(t, 0.0, OvertimeHours(&in, &out, s))
	})

	t.Run("missing anchor", func(t *testing.T) {
		out := at(18, 0, 0)
		assert.Equal(t, 0.0, OvertimeHours(nil, &out, eightHourShift))
	})

	t.Run("shift without expected hours", func(t *testing.T) {
		in := at(9, 0, 0)
		out := at(20, 0, 0)
		assert.Equal(t, 0.0, OvertimeHours(&in, &out, shift.ShiftType{}))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		in := at(9, 0, 0)
		out := in.Add(8*time.Hour + 20*time.Minute) // 1/3 hour of overtime
		assert.Equal(t, 0.33, OvertimeHours(&in, &out, eightHourShift))
	})
}

func TestBreakHours(t *testing.T) {
	t.Run("one closed break", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(12, 0, 0)),
			mkPunch("p3", punch.DirectionIn, punch.SourceBiometric, at(13, 0, 0)),
			mkPunch("p4", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}
		assert.Equal(t, 1.0, BreakHours(punches))
	})

	t.Run("trailing OUT contributes nothing", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}
		assert.Equal(t, 0.0, BreakHours(punches))
	})

	t.Run("multiple breaks accumulate", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(10, 30, 0)),
			mkPunch("p3", punch.DirectionIn, punch.SourceBiometric, at(10, 45, 0)),
			mkPunch("p4", punch.DirectionOut, punch.SourceBiometric, at(12, 0, 0)),
			mkPunch("p5", punch.DirectionIn, punch.SourceBiometric, at(13, 0, 0)),
			mkPunch("p6", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}
		assert.Equal(t, 1.25, BreakHours(punches))
	})

	t.Run("repeated OUT keeps the earlier break start", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(12, 0, 0)),
			mkPunch("p3", punch.DirectionOut, punch.SourceBiometric, at(12, 20, 0)),
			mkPunch("p4", punch.DirectionIn, punch.SourceBiometric, at(13, 0, 0)),
		}
		assert.Equal(t, 1.0, BreakHours(punches))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0.0, BreakHours(nil))
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.5, Round2(1.4999999999))
	assert.Equal(t, 0.33, Round2(1.0/3.0))
	assert.Equal(t, 2.67, Round2(8.0/3.0))
}
