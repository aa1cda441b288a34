package repository

import (
	"context"
	"time"

	"voltrent-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	ListByOwner(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	// SearchInBox returns available vehicles inside a latitude/longitude
	// bounding box; callers apply the exact radius filter.
	SearchInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64, maxPricePerHour int64, page, pageSize int32) ([]domain.Vehicle, int32, error)
	ListByStatus(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// CountOverlapping counts bookings for the vehicle in any of the given
	// statuses whose [start_time, end_time) window intersects [start, end).
	CountOverlapping(ctx context.Context, vehicleID int32, start, end time.Time, statuses []domain.BookingStatus) (int32, error)
	// ConfirmPending re-runs the overlap check against CONFIRMED/ONGOING
	// bookings and flips the booking to CONFIRMED, all inside a single
	// transaction holding the vehicle row lock. At most one of two
	// concurrent approvals for conflicting windows can succeed.
	ConfirmPending(ctx context.Context, bookingID int32) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// Schedule returns the sanitized non-terminal bookings for a vehicle
	// ending at or after now, ascending by start time, capped at limit.
	Schedule(ctx context.Context, vehicleID int32, now time.Time, limit int32) ([]domain.ScheduleEntry, error)
}

type TripRepository interface {
	// CreateWithBookingStart inserts the trip and moves the parent booking
	// to ONGOING in one transaction.
	CreateWithBookingStart(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id int32) (*domain.Trip, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Trip, error)
	GetActiveByRenter(ctx context.Context, renterID int32) (*domain.Trip, error)
	// CompleteWithBooking finalizes the trip, completes the parent booking
	// and increments the vehicle's trip counter in one transaction.
	CompleteWithBooking(ctx context.Context, trip *domain.Trip) error
	SetIssue(ctx context.Context, tripID int32, description string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Payment, error)
	ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) error
}

type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *domain.DeviceToken) error
	ListByUser(ctx context.Context, userID int32) ([]domain.DeviceToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

type ReviewRepository interface {
	// Create inserts the review and refreshes the vehicle's average rating
	// in one transaction.
	Create(ctx context.Context, review *domain.Review) error
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error)
	ListByVehicle(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Review, int32, error)
}
