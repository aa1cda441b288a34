package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusOngoing   BookingStatus = "ONGOING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

// ActiveBookingStatuses are the statuses that occupy a vehicle's calendar.
// PENDING is included at creation time so a confirmed slot cannot collect a
// flood of conflicting requests; at approval time only ConfirmedStatuses
// matter, since competing PENDING requests are resolved then.
var (
	ActiveBookingStatuses    = []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusOngoing}
	ConfirmedBookingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusOngoing}
)

type Booking struct {
	ID                 int32         `json:"id"`
	RenterID           int32         `json:"renter_id"`
	OwnerID            int32         `json:"owner_id"`
	VehicleID          int32         `json:"vehicle_id"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	Status             BookingStatus `json:"status"`
	TotalPrice         int64         `json:"total_price"`
	Deposit            int64         `json:"deposit"`
	Notes              string        `json:"notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time    `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
}

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusRejected
}

// ScheduleEntry is the sanitized projection of a booking used to render a
// vehicle's occupied slots without exposing renter identity.
type ScheduleEntry struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    BookingStatus `json:"status"`
}
