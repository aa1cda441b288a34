package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"

	"github.com/lib/pq"
)

const bookingColumns = `id, renter_id, owner_id, vehicle_id, start_time, end_time, status, total_price, deposit, notes, cancellation_reason, confirmed_at, cancelled_at, created_on, updated_on`

// overlapClause is the three-way interval intersection test for the
// half-open window [$2, $3) against a stored [start_time, end_time).
const overlapClause = `(
	($2 <= start_time AND start_time < $3)
	OR ($2 < end_time AND end_time <= $3)
	OR (start_time <= $2 AND $3 <= end_time)
)`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.RenterID, &b.OwnerID, &b.VehicleID, &b.StartTime, &b.EndTime,
		&b.Status, &b.TotalPrice, &b.Deposit, &b.Notes, &b.CancellationReason,
		&b.ConfirmedAt, &b.CancelledAt, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (renter_id, owner_id, vehicle_id, start_time, end_time, status, total_price, deposit, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.RenterID, b.OwnerID, b.VehicleID, b.StartTime, b.EndTime,
		b.Status, b.TotalPrice, b.Deposit, b.Notes, now, now).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("booking not found")
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, cancellation_reason=$2, confirmed_at=$3, cancelled_at=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.CancellationReason, b.ConfirmedAt, b.CancelledAt, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) CountOverlapping(ctx context.Context, vehicleID int32, start, end time.Time, statuses []domain.BookingStatus) (int32, error) {
	query := `SELECT count(*) FROM bookings WHERE vehicle_id = $1 AND ` + overlapClause + ` AND status = ANY($4)`
	var count int32
	err := r.db.QueryRowContext(ctx, query, vehicleID, start, end, pq.Array(statusStrings(statuses))).Scan(&count)
	return count, err
}

// ConfirmPending performs the approval-time conflict re-check and the
// CONFIRMED write in one transaction. The vehicle row is locked first so
// concurrent approvals touching the same vehicle serialize: the second
// transaction either sees the first's CONFIRMED row and fails the check,
// or blocks until the first commits.
func (r *bookingRepository) ConfirmPending(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	b, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("booking not found")
	}
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingStatusPending {
		return nil, apperr.BadRequest("booking is not pending")
	}

	var lockedVehicleID int32
	if err := tx.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, b.VehicleID).Scan(&lockedVehicleID); err != nil {
		return nil, err
	}

	// Other PENDING siblings are irrelevant here; only a window already
	// promised to someone blocks the approval.
	countQuery := `SELECT count(*) FROM bookings WHERE vehicle_id = $1 AND ` + overlapClause + ` AND status = ANY($4) AND id <> $5`
	var conflicts int32
	if err := tx.QueryRowContext(ctx, countQuery, b.VehicleID, b.StartTime, b.EndTime,
		pq.Array(statusStrings(domain.ConfirmedBookingStatuses)), b.ID).Scan(&conflicts); err != nil {
		return nil, err
	}
	if conflicts > 0 {
		// Booking stays PENDING; the owner must reject or the renter
		// must pick another slot.
		return nil, apperr.BadRequest("slot no longer available")
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET status=$1, confirmed_at=$2, updated_on=$3 WHERE id=$4`,
		domain.BookingStatusConfirmed, now, now, b.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	b.Status = domain.BookingStatusConfirmed
	b.ConfirmedAt = &now
	b.UpdatedOn = now
	return b, nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByOwner(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "owner_id", ownerID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column string, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1`

	args := []interface{}{userID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) Schedule(ctx context.Context, vehicleID int32, now time.Time, limit int32) ([]domain.ScheduleEntry, error) {
	query := `SELECT start_time, end_time, status FROM bookings
	          WHERE vehicle_id = $1 AND status = ANY($2) AND end_time >= $3
	          ORDER BY start_time ASC LIMIT $4`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, pq.Array(statusStrings(domain.ActiveBookingStatuses)), now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ScheduleEntry
	for rows.Next() {
		var e domain.ScheduleEntry
		if err := rows.Scan(&e.StartTime, &e.EndTime, &e.Status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
