package domain

import "time"

type NotificationType string

const (
	NotificationTypeBookingRequest   NotificationType = "BOOKING_REQUEST"
	NotificationTypeBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationTypeBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationTypeBookingCancelled NotificationType = "BOOKING_CANCELLED"
)

type Notification struct {
	ID         int32             `json:"id"`
	ReceiverID int32             `json:"receiver_id"`
	SenderID   int32             `json:"sender_id"`
	BookingID  *int32            `json:"booking_id,omitempty"`
	Type       NotificationType  `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
	IsRead     bool              `json:"is_read"`
	ReadAt     *time.Time        `json:"read_at,omitempty"`
	CreatedOn  time.Time         `json:"created_on"`
}
