package events

import "time"

type Type string

const (
	BookingCreated   Type = "booking_created"
	BookingApproved  Type = "booking_approved"
	BookingRejected  Type = "booking_rejected"
	BookingCancelled Type = "booking_cancelled"
)

// BookingEvent is emitted after a booking state change has been committed.
// Reason carries the rejection/cancellation reason when applicable.
type BookingEvent struct {
	Type       Type
	BookingID  int32
	VehicleID  int32
	RenterID   int32
	OwnerID    int32
	ActorID    int32
	Status     string
	Reason     string
	OccurredAt time.Time
}
