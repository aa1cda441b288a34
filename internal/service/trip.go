package service

import (
	"context"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/geo"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/repository"
)

type tripService struct {
	tripRepo    repository.TripRepository
	bookingRepo repository.BookingRepository
}

func NewTripService(tripRepo repository.TripRepository, bookingRepo repository.BookingRepository) TripService {
	return &tripService{tripRepo: tripRepo, bookingRepo: bookingRepo}
}

func (s *tripService) StartTrip(ctx context.Context, renterID, bookingID int32, lat, lon float64, battery int32, address string) (*domain.Trip, error) {
	if battery < 0 || battery > 100 {
		return nil, apperr.BadRequest("battery level must be between 0 and 100")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, apperr.BadRequest("booking does not belong to you")
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, apperr.BadRequest("booking is not confirmed")
	}
	if time.Now().Before(booking.StartTime) {
		return nil, apperr.BadRequest("booking window has not started yet")
	}
	if _, err := s.tripRepo.GetByBookingID(ctx, bookingID); err == nil {
		return nil, apperr.BadRequest("trip already exists for this booking")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	trip := &domain.Trip{
		BookingID:      bookingID,
		RenterID:       renterID,
		VehicleID:      booking.VehicleID,
		Status:         domain.TripStatusOngoing,
		StartLatitude:  lat,
		StartLongitude: lon,
		StartAddress:   address,
		StartBattery:   battery,
		StartedAt:      time.Now(),
	}
	if err := s.tripRepo.CreateWithBookingStart(ctx, trip); err != nil {
		return nil, err
	}

	logger.Info("Trip started", "trip_id", trip.ID, "booking_id", bookingID, "renter_id", renterID)
	return trip, nil
}

func (s *tripService) EndTrip(ctx context.Context, renterID, tripID int32, lat, lon float64, battery int32, address string, hasIssues bool, issueDescription string) (*domain.Trip, error) {
	if battery < 0 || battery > 100 {
		return nil, apperr.BadRequest("battery level must be between 0 and 100")
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.RenterID != renterID {
		return nil, apperr.BadRequest("trip does not belong to you")
	}
	if trip.Status != domain.TripStatusOngoing {
		return nil, apperr.BadRequest("trip is not ongoing")
	}
	if trip.StartedAt.IsZero() {
		return nil, apperr.BadRequest("trip has no recorded start")
	}

	now := time.Now()
	trip.EndLatitude = &lat
	trip.EndLongitude = &lon
	trip.EndAddress = address
	trip.EndBattery = &battery
	trip.EndedAt = &now
	trip.DurationMinutes = now.Sub(trip.StartedAt).Milliseconds() / 60000
	trip.DistanceKm = geo.DistanceKm(trip.StartLatitude, trip.StartLongitude, lat, lon)
	if hasIssues {
		trip.HasIssues = true
		trip.IssueDescription = issueDescription
	}

	if err := s.tripRepo.CompleteWithBooking(ctx, trip); err != nil {
		return nil, err
	}

	logger.Info("Trip completed", "trip_id", tripID, "distance_km", trip.DistanceKm, "duration_minutes", trip.DurationMinutes)
	return trip, nil
}

func (s *tripService) ReportIssue(ctx context.Context, renterID, tripID int32, description string) (*domain.Trip, error) {
	if description == "" {
		return nil, apperr.BadRequest("issue description is required")
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.RenterID != renterID {
		return nil, apperr.BadRequest("trip does not belong to you")
	}

	if err := s.tripRepo.SetIssue(ctx, tripID, description); err != nil {
		return nil, err
	}
	trip.HasIssues = true
	trip.IssueDescription = description

	logger.Warn("Trip issue reported", "trip_id", tripID, "renter_id", renterID)
	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, userID, tripID int32) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.RenterID != userID {
		booking, err := s.bookingRepo.GetByID(ctx, trip.BookingID)
		if err != nil || booking.OwnerID != userID {
			return nil, apperr.NotFound("trip not found")
		}
	}
	return trip, nil
}

func (s *tripService) GetActiveTrip(ctx context.Context, renterID int32) (*domain.Trip, error) {
	return s.tripRepo.GetActiveByRenter(ctx, renterID)
}
