package domain

import "time"

type TripStatus string

const (
	TripStatusOngoing   TripStatus = "ONGOING"
	TripStatusCompleted TripStatus = "COMPLETED"
	TripStatusCancelled TripStatus = "CANCELLED"
)

type Trip struct {
	ID               int32      `json:"id"`
	BookingID        int32      `json:"booking_id"`
	RenterID         int32      `json:"renter_id"`
	VehicleID        int32      `json:"vehicle_id"`
	Status           TripStatus `json:"status"`
	StartLatitude    float64    `json:"start_latitude"`
	StartLongitude   float64    `json:"start_longitude"`
	StartAddress     string     `json:"start_address,omitempty"`
	EndLatitude      *float64   `json:"end_latitude,omitempty"`
	EndLongitude     *float64   `json:"end_longitude,omitempty"`
	EndAddress       string     `json:"end_address,omitempty"`
	StartBattery     int32      `json:"start_battery"`
	EndBattery       *int32     `json:"end_battery,omitempty"`
	DistanceKm       float64    `json:"distance_traveled"`
	DurationMinutes  int64      `json:"duration"`
	HasIssues        bool       `json:"has_issues"`
	IssueDescription string     `json:"issue_description,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
}
