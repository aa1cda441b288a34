package service

import (
	"context"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/events"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/pricing"
	"voltrent-backend/internal/repository"
)

const scheduleLimit = 30

type bookingService struct {
	bookingRepo repository.BookingRepository
	vehicleRepo repository.VehicleRepository
	publisher   events.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	publisher events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		publisher:   publisher,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID, vehicleID int32, start, end time.Time, notes string) (*domain.Booking, error) {
	if !start.Before(end) {
		return nil, apperr.BadRequest("start time must be before end time")
	}
	if start.Before(time.Now()) {
		return nil, apperr.BadRequest("start time must be in the future")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID == renterID {
		return nil, apperr.BadRequest("cannot book your own vehicle")
	}
	if vehicle.Status != domain.VehicleStatusAvailable || !vehicle.IsAvailable {
		return nil, apperr.Conflict("vehicle unavailable for window")
	}

	// Best-effort check. PENDING siblings may still race in between here
	// and the insert; approval resolves those.
	overlaps, err := s.bookingRepo.CountOverlapping(ctx, vehicleID, start, end, domain.ActiveBookingStatuses)
	if err != nil {
		return nil, err
	}
	if overlaps > 0 {
		return nil, apperr.Conflict("vehicle unavailable for window")
	}

	totalPrice, err := pricing.Quote(start, end, vehicle.PricePerHour, vehicle.PricePerDay)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		RenterID:   renterID,
		OwnerID:    vehicle.OwnerID,
		VehicleID:  vehicleID,
		StartTime:  start,
		EndTime:    end,
		Status:     domain.BookingStatusPending,
		TotalPrice: totalPrice,
		Notes:      notes,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("Booking created", "booking_id", booking.ID, "vehicle_id", vehicleID, "renter_id", renterID)
	s.publish(events.BookingCreated, booking, renterID, "")
	return booking, nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, apperr.BadRequest("not the owner of this booking")
	}

	confirmed, err := s.bookingRepo.ConfirmPending(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	logger.Info("Booking approved", "booking_id", bookingID, "owner_id", ownerID)
	s.publish(events.BookingApproved, confirmed, ownerID, "")
	return confirmed, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, ownerID, bookingID int32, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, apperr.BadRequest("rejection reason is required")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, apperr.BadRequest("not the owner of this booking")
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, apperr.BadRequest("booking is not pending")
	}

	now := time.Now()
	booking.Status = domain.BookingStatusRejected
	booking.CancellationReason = reason
	booking.CancelledAt = &now
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("Booking rejected", "booking_id", bookingID, "owner_id", ownerID)
	s.publish(events.BookingRejected, booking, ownerID, reason)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, renterID, bookingID int32, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, apperr.BadRequest("cancellation reason is required")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, apperr.BadRequest("not the renter of this booking")
	}
	if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
		return nil, apperr.BadRequest("booking cannot be cancelled in status %s", booking.Status)
	}

	now := time.Now()
	booking.Status = domain.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.CancelledAt = &now
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	logger.Info("Booking cancelled", "booking_id", bookingID, "renter_id", renterID)
	s.publish(events.BookingCancelled, booking, renterID, reason)
	return booking, nil
}

// GetBooking hides bookings from non-parties behind a not-found rather than
// a forbidden, so callers cannot probe for booking ids.
func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.OwnerID != userID {
		return nil, apperr.NotFound("booking not found")
	}
	return booking, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListOwnerBookings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByOwner(ctx, ownerID, status, page, pageSize)
}

func (s *bookingService) GetVehicleSchedule(ctx context.Context, vehicleID int32) ([]domain.ScheduleEntry, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.bookingRepo.Schedule(ctx, vehicleID, time.Now(), scheduleLimit)
}

func (s *bookingService) publish(t events.Type, b *domain.Booking, actorID int32, reason string) {
	s.publisher.Publish(events.BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		VehicleID:  b.VehicleID,
		RenterID:   b.RenterID,
		OwnerID:    b.OwnerID,
		ActorID:    actorID,
		Status:     string(b.Status),
		Reason:     reason,
		OccurredAt: time.Now(),
	})
}
