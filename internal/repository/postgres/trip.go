package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

const tripColumns = `id, booking_id, renter_id, vehicle_id, status, start_latitude, start_longitude, COALESCE(start_address, ''), end_latitude, end_longitude, COALESCE(end_address, ''), start_battery, end_battery, distance_km, duration_minutes, has_issues, COALESCE(issue_description, ''), started_at, ended_at`

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) repository.TripRepository {
	return &tripRepository{db: db}
}

func scanTrip(row interface{ Scan(...any) error }) (*domain.Trip, error) {
	t := &domain.Trip{}
	err := row.Scan(&t.ID, &t.BookingID, &t.RenterID, &t.VehicleID, &t.Status,
		&t.StartLatitude, &t.StartLongitude, &t.StartAddress,
		&t.EndLatitude, &t.EndLongitude, &t.EndAddress,
		&t.StartBattery, &t.EndBattery, &t.DistanceKm, &t.DurationMinutes,
		&t.HasIssues, &t.IssueDescription, &t.StartedAt, &t.EndedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateWithBookingStart inserts the trip and flips the parent booking to
// ONGOING in one transaction, so a trip can never exist against a booking
// that still reads CONFIRMED.
func (r *tripRepository) CreateWithBookingStart(ctx context.Context, t *domain.Trip) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO trips (booking_id, renter_id, vehicle_id, status, start_latitude, start_longitude, start_address, start_battery, started_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err = tx.QueryRowContext(ctx, query, t.BookingID, t.RenterID, t.VehicleID, t.Status,
		t.StartLatitude, t.StartLongitude, t.StartAddress, t.StartBattery, t.StartedAt).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("trip already exists for this booking")
		}
		return err
	}

	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.BookingStatusOngoing, time.Now(), t.BookingID, domain.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.BadRequest("booking is not confirmed")
	}

	return tx.Commit()
}

func (r *tripRepository) GetByID(ctx context.Context, id int32) (*domain.Trip, error) {
	t, err := scanTrip(r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("trip not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tripRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Trip, error) {
	t, err := scanTrip(r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE booking_id = $1`, bookingID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("trip not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tripRepository) GetActiveByRenter(ctx context.Context, renterID int32) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE renter_id = $1 AND status = $2 ORDER BY started_at DESC LIMIT 1`
	t, err := scanTrip(r.db.QueryRowContext(ctx, query, renterID, domain.TripStatusOngoing))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("no active trip")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteWithBooking writes the computed trip results, completes the parent
// booking and bumps the vehicle trip counter. All three writes commit or
// none do.
func (r *tripRepository) CompleteWithBooking(ctx context.Context, t *domain.Trip) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE trips SET status=$1, end_latitude=$2, end_longitude=$3, end_address=$4, end_battery=$5, distance_km=$6, duration_minutes=$7, has_issues=$8, issue_description=$9, ended_at=$10 WHERE id=$11 AND status=$12`,
		domain.TripStatusCompleted, t.EndLatitude, t.EndLongitude, t.EndAddress, t.EndBattery,
		t.DistanceKm, t.DurationMinutes, t.HasIssues, t.IssueDescription, t.EndedAt,
		t.ID, domain.TripStatusOngoing)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.BadRequest("trip is not ongoing")
	}

	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`,
		domain.BookingStatusCompleted, time.Now(), t.BookingID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE vehicles SET total_trips = total_trips + 1, updated_on=$1 WHERE id=$2`,
		time.Now(), t.VehicleID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trip completion: %w", err)
	}
	t.Status = domain.TripStatusCompleted
	return nil
}

func (r *tripRepository) SetIssue(ctx context.Context, tripID int32, description string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE trips SET has_issues = TRUE, issue_description = $1 WHERE id = $2 AND status = $3`,
		description, tripID, domain.TripStatusOngoing)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.BadRequest("trip is not ongoing")
	}
	return nil
}
