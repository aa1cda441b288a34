package service

import (
	"context"
	"math"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/repository"

	"github.com/google/uuid"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	feeRate     float64
}

func NewPaymentService(paymentRepo repository.PaymentRepository, bookingRepo repository.BookingRepository, feeRate float64) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		feeRate:     feeRate,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, payerID, bookingID int32, method domain.PaymentMethod) (*domain.Payment, error) {
	switch method {
	case domain.PaymentMethodWallet, domain.PaymentMethodCard, domain.PaymentMethodTransfer:
	default:
		return nil, apperr.BadRequest("unsupported payment method")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != payerID {
		return nil, apperr.BadRequest("only the renter can pay for a booking")
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, apperr.BadRequest("booking is not confirmed")
	}

	// The deposit is collected up front together with the rental price.
	amount := booking.TotalPrice + booking.Deposit
	fee := int64(math.Round(float64(amount) * s.feeRate))
	payment := &domain.Payment{
		BookingID:   bookingID,
		PayerID:     payerID,
		Reference:   uuid.NewString(),
		Amount:      amount,
		PlatformFee: fee,
		OwnerAmount: amount - fee,
		Method:      method,
		Status:      domain.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded", "payment_id", payment.ID, "booking_id", bookingID, "amount", payment.Amount)
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, userID, paymentID int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, userID, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetBookingPayment(ctx context.Context, userID, bookingID int32) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, userID, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListMyPayments(ctx context.Context, payerID int32, page, pageSize int32) ([]domain.Payment, int32, error) {
	return s.paymentRepo.ListByPayer(ctx, payerID, page, pageSize)
}

// authorize lets the payer and the booking owner see a payment.
func (s *paymentService) authorize(ctx context.Context, userID int32, payment *domain.Payment) error {
	if payment.PayerID == userID {
		return nil
	}
	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil || booking.OwnerID != userID {
		return apperr.NotFound("payment not found")
	}
	return nil
}
