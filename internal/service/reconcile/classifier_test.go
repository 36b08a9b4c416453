package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
	"github.com/winco-group/attendance-backend-go/internal/domain/shift"
)

func timeOfDay(hour, min int) *time.Time {
	t := time.Date(1, 1, 1, hour, min, 0, 0, time.UTC)
	return &t
}

func dayShift() shift.ShiftType {
	return shift.ShiftType{
		ID:        "shift-day",
		Name:      "Day Shift",
		StartTime: timeOfDay(9, 0),
		EndTime:   timeOfDay(17, 0),
	}
}

func TestClassify(t *testing.T) {
	t.Run("first IN and last OUT become the anchors", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(12, 0, 0)),
			mkPunch("p3", punch.DirectionIn, punch.SourceBiometric, at(13, 0, 0)),
			mkPunch("p4", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}

		cls := Classify(punches, dayShift())
		require.NotNil(t, cls.InTime)
		require.NotNil(t, cls.OutTime)
		assert.Equal(t, at(9, 0, 0), *cls.InTime)
		assert.Equal(t, at(17, 0, 0), *cls.OutTime)
		assert.False(t, cls.LateEntry)
		assert.False(t, cls.EarlyExit)
	})

	t.Run("late entry and punctual exit", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 15, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(17, 30, 0)),
		}

		cls := Classify(punches, dayShift())
		assert.True(t, cls.LateEntry)
		assert.False(t, cls.EarlyExit)
	})

	t.Run("early exit", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 55, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(16, 30, 0)),
		}

		cls := Classify(punches, dayShift())
		assert.False(t, cls.LateEntry)
		assert.True(t, cls.EarlyExit)
	})

	t.Run("OUT-only day", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}

		cls := Classify(punches, dayShift())
		assert.Nil(t, cls.InTime)
		require.NotNil(t, cls.OutTime)
		assert.False(t, cls.LateEntry)
	})

	t.Run("missing shift boundary disables its flag", func(t *testing.T) {
		open := shift.ShiftType{ID: "shift-open", StartTime: timeOfDay(9, 0)}
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 30, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(15, 0, 0)),
		}

		cls := Classify(punches, open)
		assert.True(t, cls.LateEntry)
		assert.False(t, cls.EarlyExit)
	})

	t.Run("no punches yields empty classification", func(t *testing.T) {
		cls := Classify(nil, dayShift())
		assert.Nil(t, cls.InTime)
		assert.Nil(t, cls.OutTime)
	})
}

func TestPairedWorkedHours(t *testing.T) {
	t.Run("sums each cycle", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(12, 0, 0)),
			mkPunch("p3", punch.DirectionIn, punch.SourceBiometric, at(13, 0, 0)),
			mkPunch("p4", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}
		assert.Equal(t, 7.0, PairedWorkedHours(punches))
	})

	t.Run("ignores unmatched punches", func(t *testing.T) {
		punches := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionOut, punch.SourceBiometric, at(8, 0, 0)),
			mkPunch("p2", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p3", punch.DirectionOut, punch.SourceBiometric, at(12, 0, 0)),
			mkPunch("p4", punch.DirectionIn, punch.SourceBiometric, at(13, 0, 0)),
		}
		assert.Equal(t, 3.0, PairedWorkedHours(punches))
	})
}
