package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/security"
	"voltrent-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) CreateBooking(ctx context.Context, renterID, vehicleID int32, start, end time.Time, notes string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, vehicleID, start, end, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) RejectBooking(ctx context.Context, ownerID, bookingID int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, renterID, bookingID int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) GetBooking(ctx context.Context, userID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *mockBookingService) ListMyBookings(ctx context.Context, renterID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *mockBookingService) ListOwnerBookings(ctx context.Context, ownerID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *mockBookingService) GetVehicleSchedule(ctx context.Context, vehicleID int32) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.ScheduleEntry), args.Error(1)
}

var _ service.BookingService = (*mockBookingService)(nil)

func authedRequest(method, target string, body []byte, userID int32) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &security.UserClaims{UserID: userID, Type: security.TokenTypeAccess}
	return req.WithContext(context.WithValue(req.Context(), claimsCtxKey{}, claims))
}

func TestBookingHandler_Create(t *testing.T) {
	svc := new(mockBookingService)
	h := &bookingHandler{bookings: svc}

	start := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)
	end := start.Add(4 * time.Hour)

	t.Run("Created", func(t *testing.T) {
		svc.On("CreateBooking", mock.Anything, int32(1), int32(2), start, end, "notes").
			Return(&domain.Booking{ID: 5, Status: domain.BookingStatusPending, TotalPrice: 80000}, nil).Once()

		body, _ := json.Marshal(map[string]any{
			"vehicle_id": 2,
			"start_time": start.Format(time.RFC3339),
			"end_time":   end.Format(time.RFC3339),
			"notes":      "notes",
		})
		rec := httptest.NewRecorder()
		h.create(rec, authedRequest(http.MethodPost, "/api/v1/bookings", body, 1))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Booking
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, int32(5), got.ID)
	})

	t.Run("ConflictMapsTo409", func(t *testing.T) {
		svc.On("CreateBooking", mock.Anything, int32(1), int32(2), start, end, "").
			Return(nil, apperr.Conflict("vehicle unavailable for window")).Once()

		body, _ := json.Marshal(map[string]any{
			"vehicle_id": 2,
			"start_time": start.Format(time.RFC3339),
			"end_time":   end.Format(time.RFC3339),
		})
		rec := httptest.NewRecorder()
		h.create(rec, authedRequest(http.MethodPost, "/api/v1/bookings", body, 1))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})

	t.Run("BadTimeFormat", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"vehicle_id": 2, "start_time": "tomorrow", "end_time": "later"})
		rec := httptest.NewRecorder()
		h.create(rec, authedRequest(http.MethodPost, "/api/v1/bookings", body, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBookingHandler_Approve(t *testing.T) {
	svc := new(mockBookingService)
	h := &bookingHandler{bookings: svc}

	t.Run("NotFoundMapsTo404", func(t *testing.T) {
		svc.On("ApproveBooking", mock.Anything, int32(10), int32(99)).
			Return(nil, apperr.NotFound("booking not found")).Once()

		req := authedRequest(http.MethodPatch, "/api/v1/owner/bookings/99/approve", nil, 10)
		req = mux.SetURLVars(req, map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		h.approve(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ApproveConflictMapsTo400", func(t *testing.T) {
		svc.On("ApproveBooking", mock.Anything, int32(10), int32(5)).
			Return(nil, apperr.BadRequest("slot no longer available")).Once()

		req := authedRequest(http.MethodPatch, "/api/v1/owner/bookings/5/approve", nil, 10)
		req = mux.SetURLVars(req, map[string]string{"id": "5"})
		rec := httptest.NewRecorder()
		h.approve(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
