package service_test

import (
	"context"
	"testing"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/events"
	"voltrent-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func availableVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:           2,
		OwnerID:      10,
		Name:         "VinFast Evo200",
		Status:       domain.VehicleStatusAvailable,
		IsAvailable:  true,
		PricePerHour: 20000,
		PricePerDay:  300000,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	renterID := int32(1)
	start := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	end := start.Add(4 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, vehicleRepo, pub)

		vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableVehicle(), nil)
		bookingRepo.On("CountOverlapping", ctx, int32(2), start, end, domain.ActiveBookingStatuses).Return(int32(0), nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, renterID, 2, start, end, "near the office")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, int64(80000), booking.TotalPrice) // 4h x 20000
		assert.Equal(t, int32(10), booking.OwnerID)

		assert.Len(t, pub.Events, 1)
		assert.Equal(t, events.BookingCreated, pub.Events[0].Type)
	})

	t.Run("DailyRateAtExactly24h", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, vehicleRepo, pub)

		dayEnd := start.Add(24 * time.Hour)
		vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableVehicle(), nil)
		bookingRepo.On("CountOverlapping", ctx, int32(2), start, dayEnd, domain.ActiveBookingStatuses).Return(int32(0), nil)
		bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, renterID, 2, start, dayEnd, "")
		assert.NoError(t, err)
		assert.Equal(t, int64(300000), booking.TotalPrice)
	})

	t.Run("OverlapConflict", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, vehicleRepo, pub)

		vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableVehicle(), nil)
		bookingRepo.On("CountOverlapping", ctx, int32(2), start, end, domain.ActiveBookingStatuses).Return(int32(1), nil)

		booking, err := svc.CreateBooking(ctx, renterID, 2, start, end, "")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsConflict(err))
		assert.Empty(t, pub.Events)
	})

	t.Run("OwnVehicle", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		svc := service.NewBookingService(bookingRepo, vehicleRepo, &MockPublisher{})

		vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableVehicle(), nil)

		booking, err := svc.CreateBooking(ctx, int32(10), 2, start, end, "")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("PastStart", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		svc := service.NewBookingService(bookingRepo, vehicleRepo, &MockPublisher{})

		booking, err := svc.CreateBooking(ctx, renterID, 2, time.Now().Add(-time.Hour), end, "")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("VehicleNotAvailable", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		vehicleRepo := new(MockVehicleRepo)
		svc := service.NewBookingService(bookingRepo, vehicleRepo, &MockPublisher{})

		v := availableVehicle()
		v.Status = domain.VehicleStatusMaintenance
		vehicleRepo.On("GetByID", ctx, int32(2)).Return(v, nil)

		booking, err := svc.CreateBooking(ctx, renterID, 2, start, end, "")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestBookingService_ApproveBooking(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(10)
	bookingID := int32(5)

	pending := &domain.Booking{
		ID:        bookingID,
		RenterID:  1,
		OwnerID:   ownerID,
		VehicleID: 2,
		Status:    domain.BookingStatusPending,
	}

	t.Run("Success", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), pub)

		confirmed := *pending
		confirmed.Status = domain.BookingStatusConfirmed
		bookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
		bookingRepo.On("ConfirmPending", ctx, bookingID).Return(&confirmed, nil)

		booking, err := svc.ApproveBooking(ctx, ownerID, bookingID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
		assert.Len(t, pub.Events, 1)
		assert.Equal(t, events.BookingApproved, pub.Events[0].Type)
	})

	t.Run("NotOwner", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), &MockPublisher{})

		bookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)

		booking, err := svc.ApproveBooking(ctx, int32(99), bookingID)
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("ConflictLeavesPendingAndNoEvent", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), pub)

		bookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
		bookingRepo.On("ConfirmPending", ctx, bookingID).Return(nil, apperr.BadRequest("slot no longer available"))

		booking, err := svc.ApproveBooking(ctx, ownerID, bookingID)
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
		assert.Empty(t, pub.Events)
	})
}

func TestBookingService_RejectBooking(t *testing.T) {
	ctx := context.Background()
	ownerID := int32(10)
	bookingID := int32(5)

	t.Run("Success", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), pub)

		pending := &domain.Booking{ID: bookingID, RenterID: 1, OwnerID: ownerID, Status: domain.BookingStatusPending}
		bookingRepo.On("GetByID", ctx, bookingID).Return(pending, nil)
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		booking, err := svc.RejectBooking(ctx, ownerID, bookingID, "vehicle in repair")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusRejected, booking.Status)
		assert.NotNil(t, booking.CancelledAt)
		assert.Equal(t, events.BookingRejected, pub.Events[0].Type)
	})

	t.Run("DoubleRejectFails", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), &MockPublisher{})

		rejected := &domain.Booking{ID: bookingID, RenterID: 1, OwnerID: ownerID, Status: domain.BookingStatusRejected}
		bookingRepo.On("GetByID", ctx, bookingID).Return(rejected, nil)

		booking, err := svc.RejectBooking(ctx, ownerID, bookingID, "again")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("MissingReason", func(t *testing.T) {
		svc := service.NewBookingService(new(MockBookingRepo), new(MockVehicleRepo), &MockPublisher{})

		booking, err := svc.RejectBooking(ctx, ownerID, bookingID, "")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()
	renterID := int32(1)
	bookingID := int32(5)

	t.Run("CancelConfirmed", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		pub := &MockPublisher{}
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), pub)

		confirmed := &domain.Booking{ID: bookingID, RenterID: renterID, OwnerID: 10, Status: domain.BookingStatusConfirmed}
		bookingRepo.On("GetByID", ctx, bookingID).Return(confirmed, nil)
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

		booking, err := svc.CancelBooking(ctx, renterID, bookingID, "change of plans")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
		assert.Equal(t, events.BookingCancelled, pub.Events[0].Type)
	})

	t.Run("CannotCancelOngoing", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), &MockPublisher{})

		ongoing := &domain.Booking{ID: bookingID, RenterID: renterID, OwnerID: 10, Status: domain.BookingStatusOngoing}
		bookingRepo.On("GetByID", ctx, bookingID).Return(ongoing, nil)

		booking, err := svc.CancelBooking(ctx, renterID, bookingID, "too late")
		assert.Nil(t, booking)
		assert.True(t, apperr.IsBadRequest(err))
	})
}

func TestBookingService_GetBooking(t *testing.T) {
	ctx := context.Background()
	bookingRepo := new(MockBookingRepo)
	svc := service.NewBookingService(bookingRepo, new(MockVehicleRepo), &MockPublisher{})

	b := &domain.Booking{ID: 5, RenterID: 1, OwnerID: 10}
	bookingRepo.On("GetByID", ctx, int32(5)).Return(b, nil)

	t.Run("PartyCanRead", func(t *testing.T) {
		booking, err := svc.GetBooking(ctx, 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), booking.ID)
	})

	t.Run("StrangerGetsNotFound", func(t *testing.T) {
		booking, err := svc.GetBooking(ctx, 99, 5)
		assert.Nil(t, booking)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestBookingService_GetVehicleSchedule(t *testing.T) {
	ctx := context.Background()
	bookingRepo := new(MockBookingRepo)
	vehicleRepo := new(MockVehicleRepo)
	svc := service.NewBookingService(bookingRepo, vehicleRepo, &MockPublisher{})

	entries := []domain.ScheduleEntry{
		{StartTime: time.Now().Add(time.Hour), EndTime: time.Now().Add(3 * time.Hour), Status: domain.BookingStatusConfirmed},
	}
	vehicleRepo.On("GetByID", ctx, int32(2)).Return(availableVehicle(), nil)
	bookingRepo.On("Schedule", ctx, int32(2), mock.AnythingOfType("time.Time"), int32(30)).Return(entries, nil)

	got, err := svc.GetVehicleSchedule(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}
