package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review and recomputes the vehicle's average rating in
// the same transaction.
func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO reviews (booking_id, vehicle_id, reviewer_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query, rv.BookingID, rv.VehicleID, rv.ReviewerID, rv.Rating, rv.Comment, time.Now()).
		Scan(&rv.ID, &rv.CreatedOn)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("booking already reviewed")
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE vehicles SET rating = (SELECT AVG(rating) FROM reviews WHERE vehicle_id = $1), updated_on = $2 WHERE id = $1`,
		rv.VehicleID, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reviewRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Review, error) {
	rv := &domain.Review{}
	query := `SELECT id, booking_id, vehicle_id, reviewer_id, rating, COALESCE(comment, ''), created_on FROM reviews WHERE booking_id = $1`
	err := r.db.QueryRowContext(ctx, query, bookingID).
		Scan(&rv.ID, &rv.BookingID, &rv.VehicleID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("review not found")
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *reviewRepository) ListByVehicle(ctx context.Context, vehicleID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE vehicle_id = $1`, vehicleID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, booking_id, vehicle_id, reviewer_id, rating, COALESCE(comment, ''), created_on
	          FROM reviews WHERE vehicle_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.VehicleID, &rv.ReviewerID, &rv.Rating, &rv.Comment, &rv.CreatedOn); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}
