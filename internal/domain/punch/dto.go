package punch

import (
	"github.com/winco-group/attendance-backend-go/internal/pkg/validator"
)

// MobileCheckinRequest is the body of the mobile clock-in/out endpoint. The
// handler fills UserAgent and SourceIP from the request; they are never
// client-supplied fields.
type MobileCheckinRequest struct {
	Direction      string         `json:"direction"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	GPSAccuracy    *float64       `json:"accuracy,omitempty"`
	FingerprintRaw map[string]any `json:"fingerprint_raw,omitempty"`

	UserAgent string `json:"-"`
	SourceIP  string `json:"-"`
}

func (r *MobileCheckinRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDirection(r.Direction) {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be IN or OUT",
		})
	}

	if !validator.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude must be between -90 and 90 and longitude between -180 and 180",
		})
	}

	if r.GPSAccuracy != nil && *r.GPSAccuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "accuracy",
			Message: "accuracy must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MobileCheckinResponse struct {
	PunchID        string  `json:"punch_id"`
	Direction      string  `json:"direction"`
	Time           string  `json:"time"`
	WithinGeofence bool    `json:"within_geofence"`
	WorkSiteID     *string `json:"work_site_id,omitempty"`
}
