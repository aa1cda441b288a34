package postgres

import (
	"context"
	"database/sql"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository"
)

const paymentColumns = `id, booking_id, payer_id, reference, amount, platform_fee, owner_amount, method, status, created_on, updated_on`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row interface{ Scan(...any) error }) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.PayerID, &p.Reference, &p.Amount,
		&p.PlatformFee, &p.OwnerAmount, &p.Method, &p.Status, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (booking_id, payer_id, reference, amount, platform_fee, owner_amount, method, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_on, updated_on`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.BookingID, p.PayerID, p.Reference, p.Amount,
		p.PlatformFee, p.OwnerAmount, p.Method, p.Status, now, now).Scan(&p.ID, &p.CreatedOn, &p.UpdatedOn)
	if isUniqueViolation(err) {
		return apperr.Conflict("payment already recorded for this booking")
	}
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("payment not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE booking_id = $1`, bookingID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("payment not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByPayer(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE payer_id = $1`, payerID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payer_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, payerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, *p)
	}
	return payments, count, rows.Err()
}
