package postgres

import (
	"database/sql"
	"errors"

	"voltrent-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.TripRepository
	repository.PaymentRepository
	repository.NotificationRepository
	repository.DeviceTokenRepository
	repository.ReviewRepository
}

// isUniqueViolation reports whether err is a postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		TripRepository:         NewTripRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DeviceTokenRepository:  NewDeviceTokenRepository(db),
		ReviewRepository:       NewReviewRepository(db),
	}
}
