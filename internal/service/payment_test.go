package service_test

import (
	"context"
	"testing"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentService_CreatePayment(t *testing.T) {
	ctx := context.Background()
	payerID := int32(1)
	bookingID := int32(5)

	confirmed := &domain.Booking{
		ID:         bookingID,
		RenterID:   payerID,
		OwnerID:    10,
		Status:     domain.BookingStatusConfirmed,
		TotalPrice: 300000,
	}

	t.Run("FeeSplit", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewPaymentService(paymentRepo, bookingRepo, 0.15)

		bookingRepo.On("GetByID", ctx, bookingID).Return(confirmed, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.CreatePayment(ctx, payerID, bookingID, domain.PaymentMethodWallet)
		assert.NoError(t, err)
		assert.Equal(t, int64(300000), payment.Amount)
		assert.Equal(t, int64(45000), payment.PlatformFee)
		assert.Equal(t, int64(255000), payment.OwnerAmount)
		assert.NotEmpty(t, payment.Reference)
		assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	})

	t.Run("DepositIncludedInAmount", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewPaymentService(paymentRepo, bookingRepo, 0.15)

		withDeposit := *confirmed
		withDeposit.Deposit = 100000
		bookingRepo.On("GetByID", ctx, bookingID).Return(&withDeposit, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)

		payment, err := svc.CreatePayment(ctx, payerID, bookingID, domain.PaymentMethodWallet)
		assert.NoError(t, err)
		assert.Equal(t, int64(400000), payment.Amount)
		assert.Equal(t, int64(60000), payment.PlatformFee)
		assert.Equal(t, int64(340000), payment.OwnerAmount)
	})

	t.Run("OnlyRenterPays", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewPaymentService(paymentRepo, bookingRepo, 0.15)

		bookingRepo.On("GetByID", ctx, bookingID).Return(confirmed, nil)

		payment, err := svc.CreatePayment(ctx, int32(99), bookingID, domain.PaymentMethodCard)
		assert.Nil(t, payment)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("BookingNotConfirmed", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewPaymentService(paymentRepo, bookingRepo, 0.15)

		pending := *confirmed
		pending.Status = domain.BookingStatusPending
		bookingRepo.On("GetByID", ctx, bookingID).Return(&pending, nil)

		payment, err := svc.CreatePayment(ctx, payerID, bookingID, domain.PaymentMethodWallet)
		assert.Nil(t, payment)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("DuplicatePaymentConflict", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewPaymentService(paymentRepo, bookingRepo, 0.15)

		bookingRepo.On("GetByID", ctx, bookingID).Return(confirmed, nil)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).
			Return(apperr.Conflict("payment already recorded for this booking"))

		payment, err := svc.CreatePayment(ctx, payerID, bookingID, domain.PaymentMethodWallet)
		assert.Nil(t, payment)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("BadMethod", func(t *testing.T) {
		svc := service.NewPaymentService(new(MockPaymentRepo), new(MockBookingRepo), 0.15)

		payment, err := svc.CreatePayment(ctx, payerID, bookingID, domain.PaymentMethod("CRYPTO"))
		assert.Nil(t, payment)
		assert.True(t, apperr.IsBadRequest(err))
	})
}

func TestNotificationService_MarkAllAsReadIdempotent(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(MockNotificationRepo)
	svc := service.NewNotificationService(noteRepo, new(MockDeviceTokenRepo))

	noteRepo.On("MarkAllAsRead", ctx, int32(1)).Return(nil)
	noteRepo.On("UnreadCount", ctx, int32(1)).Return(int32(0), nil)

	assert.NoError(t, svc.MarkAllAsRead(ctx, 1))
	count, err := svc.UnreadCount(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), count)

	// Second pass is a no-op with the same observable result.
	assert.NoError(t, svc.MarkAllAsRead(ctx, 1))
	count, err = svc.UnreadCount(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(0), count)
}
