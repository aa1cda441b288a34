package service

import (
	"context"
	"time"

	"voltrent-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, phone, avatarURL string) (*domain.User, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, renterID, vehicleID int32, start, end time.Time, notes string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	RejectBooking(ctx context.Context, ownerID, bookingID int32, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, renterID, bookingID int32, reason string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListOwnerBookings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	GetVehicleSchedule(ctx context.Context, vehicleID int32) ([]domain.ScheduleEntry, error)
}

type TripService interface {
	StartTrip(ctx context.Context, renterID, bookingID int32, lat, lon float64, battery int32, address string) (*domain.Trip, error)
	EndTrip(ctx context.Context, renterID, tripID int32, lat, lon float64, battery int32, address string, hasIssues bool, issueDescription string) (*domain.Trip, error)
	ReportIssue(ctx context.Context, renterID, tripID int32, description string) (*domain.Trip, error)
	GetTrip(ctx context.Context, userID, tripID int32) (*domain.Trip, error)
	GetActiveTrip(ctx context.Context, renterID int32) (*domain.Trip, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, payerID, bookingID int32, method domain.PaymentMethod) (*domain.Payment, error)
	GetPayment(ctx context.Context, userID, paymentID int32) (*domain.Payment, error)
	GetBookingPayment(ctx context.Context, userID, bookingID int32) (*domain.Payment, error)
	ListMyPayments(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}

// VehicleWithDistance decorates a search hit with the great-circle distance
// from the search origin.
type VehicleWithDistance struct {
	domain.Vehicle
	DistanceKm float64 `json:"distance_km"`
}

type VehicleService interface {
	RegisterVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, ownerID int32, vehicle *domain.Vehicle) error
	SetAvailability(ctx context.Context, ownerID, vehicleID int32, status domain.VehicleStatus, isAvailable bool) (*domain.Vehicle, error)
	ListMyVehicles(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	SearchVehicles(ctx context.Context, lat, lon, radiusKm float64, maxPricePerHour int64, page, pageSize int32) ([]VehicleWithDistance, int32, error)
	// Admin moderation of newly registered vehicles.
	ApproveVehicle(ctx context.Context, vehicleID int32) (*domain.Vehicle, error)
	RejectVehicle(ctx context.Context, vehicleID int32) (*domain.Vehicle, error)
	ListPendingApproval(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	UnreadCount(ctx context.Context, userID int32) (int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
	MarkAllAsRead(ctx context.Context, userID int32) error
	RegisterDevice(ctx context.Context, userID int32, token string, platform domain.DevicePlatform) error
	UnregisterDevice(ctx context.Context, token string) error
}

type ReviewService interface {
	CreateReview(ctx context.Context, reviewerID, bookingID, rating int32, comment string) (*domain.Review, error)
	ListVehicleReviews(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Review, int32, error)
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, vehicleName string) error
	SendBookingApprovalNotification(ctx context.Context, renterEmail, vehicleName string) error
	SendBookingRejectionNotification(ctx context.Context, renterEmail, vehicleName, reason string) error
	SendBookingCancellationNotification(ctx context.Context, ownerEmail, renterName, vehicleName, reason string) error
	SendBookingReminderNotification(ctx context.Context, renterEmail, vehicleName string, startTime time.Time) error
}
