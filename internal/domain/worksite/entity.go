package worksite

import "time"

type WorkSite struct {
	ID           string
	Name         string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TourPlan temporarily assigns an employee to a work site other than their
// default, for the inclusive date range [FromDate, ToDate].
type TourPlan struct {
	ID         string
	EmployeeID string
	WorkSiteID string
	Status     TourPlanStatus
	FromDate   time.Time
	ToDate     time.Time
}

type TourPlanStatus string

const (
	TourPlanActive    TourPlanStatus = "active"
	TourPlanCancelled TourPlanStatus = "cancelled"
	TourPlanCompleted TourPlanStatus = "completed"
)
