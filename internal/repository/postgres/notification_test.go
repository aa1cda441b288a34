package postgres_test

import (
	"context"
	"testing"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("PersistsBookingReference", func(t *testing.T) {
		bookingID := int32(5)
		note := &domain.Notification{
			ReceiverID: 10,
			SenderID:   1,
			BookingID:  &bookingID,
			Type:       domain.NotificationTypeBookingRequest,
			Title:      "New booking request",
			Message:    "You have a new booking request for VinFast Evo200.",
			Attributes: map[string]string{"booking_id": "5"},
		}

		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(note.ReceiverID, note.SenderID, note.BookingID, note.Type, note.Title, note.Message,
				sqlmock.AnyArg(), note.IsRead, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, time.Now()))

		err := repo.Create(ctx, note)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), note.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("ScansBookingReference", func(t *testing.T) {
		mock.ExpectQuery("SELECT count").
			WithArgs(int32(10)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		cols := []string{"id", "receiver_id", "sender_id", "booking_id", "type", "title", "message", "attributes", "is_read", "read_at", "created_on"}
		mock.ExpectQuery("SELECT (.+) FROM notifications WHERE receiver_id").
			WithArgs(int32(10), int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, 10, 1, 5, "BOOKING_REQUEST", "New booking request", "msg", []byte(`{"booking_id":"5"}`), false, nil, time.Now()).
				AddRow(2, 10, 0, nil, "BOOKING_REQUEST", "Welcome", "msg", []byte(`{}`), true, time.Now(), time.Now()))

		notes, count, err := repo.List(ctx, 10, 20, 0)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), count)
		assert.Len(t, notes, 2)
		if assert.NotNil(t, notes[0].BookingID) {
			assert.Equal(t, int32(5), *notes[0].BookingID)
		}
		assert.Nil(t, notes[1].BookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
