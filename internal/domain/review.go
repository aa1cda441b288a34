package domain

import "time"

type Review struct {
	ID         int32     `json:"id"`
	BookingID  int32     `json:"booking_id"`
	VehicleID  int32     `json:"vehicle_id"`
	ReviewerID int32     `json:"reviewer_id"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
}
