package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/winco-group/attendance-backend-go/internal/domain/worksite"
)

func f64(v float64) *float64 { return &v }

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistance(-6.2, 106.8, -6.2, 106.8))
	})

	t.Run("known distance between Jakarta and Surabaya", func(t *testing.T) {
		// Monas to Tugu Pahlawan, roughly 663 km
		d := HaversineDistance(-6.1754, 106.8272, -7.2458, 112.7378)
		assert.InDelta(t, 663_000, d, 5_000)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(-6.2, 106.8, -6.3, 106.9)
		b := HaversineDistance(-6.3, 106.9, -6.2, 106.8)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestWithinFence(t *testing.T) {
	site := &worksite.WorkSite{
		ID:           "site-1",
		Name:         "HQ",
		Latitude:     f64(-6.2000),
		Longitude:    f64(106.8000),
		RadiusMeters: f64(150),
	}

	t.Run("inside the radius", func(t *testing.T) {
		assert.True(t, WithinFence(site, -6.2001, 106.8001))
	})

	t.Run("outside the radius", func(t *testing.T) {
		assert.False(t, WithinFence(site, -6.2100, 106.8100))
	})

	t.Run("exactly on the boundary counts as inside", func(t *testing.T) {
		// A point whose haversine distance equals the radius
		center := &worksite.WorkSite{
			Latitude:     f64(0),
			Longitude:    f64(0),
			RadiusMeters: f64(HaversineDistance(0, 0, 0, 0.001))}
		assert.True(t, WithinFence(center, 0, 0.001))
	})

	t.Run("nil site is outside", func(t *testing.T) {
		assert.False(t, WithinFence(nil, -6.2, 106.8))
	})

	t.Run("site without coordinates is outside", func(t *testing.T) {
		assert.False(t, WithinFence(&worksite.WorkSite{RadiusMeters: f64(100)}, -6.2, 106.8))
	})

	t.Run("site without radius is outside", func(t *testing.T) {
		assert.False(t, WithinFence(&worksite.WorkSite{
			Latitude:  f64(-6.2),
			Longitude: f64(106.8),
		}, -6.2, 106.8))
	})
}
