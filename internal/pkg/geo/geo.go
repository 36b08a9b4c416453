package geo

import (
	"math"

	"github.com/winco-group/attendance-backend-go/internal/domain/worksite"
)

const earthRadiusMeters = 6371000

// HaversineDistance returns the great-circle distance between two GPS
// coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinFence reports whether (lat, lng) falls inside the work site's
// geofence. An unconfigured site never confirms compliance: a nil site or a
// site missing any of latitude, longitude or radius returns false. The
// boundary itself counts as inside.
func WithinFence(site *worksite.WorkSite, lat, lng float64) bool {
	if site == nil || site.Latitude == nil || site.Longitude == nil || site.RadiusMeters == nil {
		return false
	}

	distance := HaversineDistance(*site.Latitude, *site.Longitude, lat, lng)
	return distance <= *site.RadiusMeters
}
