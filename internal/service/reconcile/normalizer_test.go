package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winco-group/attendance-backend-go/internal/domain/punch"
)

var testDay = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func at(hour, min, sec int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second)
}

func mkPunch(id string, dir punch.Direction, source punch.Source, t time.Time) punch.PunchEvent {
	return punch.PunchEvent{
		ID:         id,
		Source:     source,
		EmployeeID: "emp-1",
		Time:       t,
		Direction:  dir,
	}
}

func TestNormalize(t *testing.T) {
	t.Run("drops same-direction punches within the window", func(t *testing.T) {
		in := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
			mkPunch("p2", punch.DirectionIn, punch.SourceMobile, at(8, 0, 10)),
			mkPunch("p3", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
			mkPunch("p4", punch.DirectionOut, punch.SourceMobile, at(17, 0, 5)),
		}

		out := Normalize(in, DefaultDedupWindow)
		require.Len(t, out, 2)
		assert.Equal(t, "p1", out[0].ID)
		assert.Equal(t, "p3", out[1].ID)
	})

	t.Run("keeps direction changes regardless of spacing", func(t *testing.T) {
		in := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceBiometric, at(8, 0, 5)),
		}

		out := Normalize(in, DefaultDedupWindow)
		require.Len(t, out, 2)
		assert.Equal(t, punch.DirectionIn, out[0].Direction)
		assert.Equal(t, punch.DirectionOut, out[1].Direction)
	})

	t.Run("orders by time regardless of input order", func(t *testing.T) {
		in := []punch.PunchEvent{
			mkPunch("p3", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
			mkPunch("p2", punch.DirectionOut, punch.SourceMobile, at(12, 0, 0)),
		}

		out := Normalize(in, DefaultDedupWindow)
		require.Len(t, out, 3)
		assert.Equal(t, []string{"p1", "p2", "p3"}, []string{out[0].ID, out[1].ID, out[2].ID})
	})

	t.Run("tie on timestamp prefers biometric", func(t *testing.T) {
		in := []punch.PunchEvent{
			mkPunch("p-mobile", punch.DirectionIn, punch.SourceMobile, at(8, 0, 0)),
			mkPunch("p-bio", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
		}

		out := Normalize(in, DefaultDedupWindow)
		require.Len(t, out, 1)
		assert.Equal(t, "p-bio", out[0].ID)
	})

	t.Run("sliding window collapses a burst against the last kept punch", func(t *testing.T) {
		// 45s apart each, so every one is within the window of the first
		// kept punch's successor
		in := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
			mkPunch("p2", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 45)),
			mkPunch("p3", punch.DirectionIn, punch.SourceBiometric, at(8, 1, 30)),
		}

		out := Normalize(in, DefaultDedupWindow)
		require.Len(t, out, 2)
		assert.Equal(t, "p1", out[0].ID)
		// p2 dropped against p1; p3 is 90s after p1, outside the window
		assert.Equal(t, "p3", out[1].ID)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []punch.PunchEvent{
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
			mkPunch("p2", punch.DirectionIn, punch.SourceMobile, at(8, 0, 30)),
			mkPunch("p3", punch.DirectionOut, punch.SourceBiometric, at(17, 0, 0)),
		}

		once := Normalize(in, DefaultDedupWindow)
		twice := Normalize(once, DefaultDedupWindow)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Normalize(nil, DefaultDedupWindow))
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		in := []punch.PunchEvent{
			mkPunch("p2", punch.DirectionIn, punch.SourceBiometric, at(9, 0, 0)),
			mkPunch("p1", punch.DirectionIn, punch.SourceBiometric, at(8, 0, 0)),
		}

		Normalize(in, DefaultDedupWindow)
		assert.Equal(t, "p2", in[0].ID)
	})
}
