package service

import (
	"context"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, reviewerID, bookingID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.BadRequest("rating must be between 1 and 5")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != reviewerID {
		return nil, apperr.BadRequest("only the renter can review a booking")
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, apperr.BadRequest("booking is not completed")
	}

	review := &domain.Review{
		BookingID:  bookingID,
		VehicleID:  booking.VehicleID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListVehicleReviews(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	return s.reviewRepo.ListByVehicle(ctx, vehicleID, page, pageSize)
}
