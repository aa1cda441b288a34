package jobs

import (
	"context"
	"testing"
	"time"

	"voltrent-backend/internal/config"
	"voltrent-backend/internal/events"
	"voltrent-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

type capturePublisher struct {
	events []events.BookingEvent
}

func (p *capturePublisher) Publish(ev events.BookingEvent) {
	p.events = append(p.events, ev)
}

type fakeEmail struct {
	reminders []string
	err       error
}

func (f *fakeEmail) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, vehicleName string) error {
	return nil
}
func (f *fakeEmail) SendBookingApprovalNotification(ctx context.Context, renterEmail, vehicleName string) error {
	return nil
}
func (f *fakeEmail) SendBookingRejectionNotification(ctx context.Context, renterEmail, vehicleName, reason string) error {
	return nil
}
func (f *fakeEmail) SendBookingCancellationNotification(ctx context.Context, ownerEmail, renterName, vehicleName, reason string) error {
	return nil
}
func (f *fakeEmail) SendBookingReminderNotification(ctx context.Context, renterEmail, vehicleName string, startTime time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.reminders = append(f.reminders, renterEmail)
	return nil
}

func newTestRunner(t *testing.T) (*JobRunner, sqlmock.Sqlmock, *capturePublisher, *fakeEmail) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pub := &capturePublisher{}
	email := &fakeEmail{}
	jr := NewJobRunner(db, postgres.NewStore(db), pub, email, &config.Config{})
	return jr, mock, pub, email
}

func TestExpireStalePendingBookings(t *testing.T) {
	t.Run("PublishesCancellationPerExpiredBooking", func(t *testing.T) {
		jr, mock, pub, _ := newTestRunner(t)

		rows := sqlmock.NewRows([]string{"id", "renter_id", "owner_id", "vehicle_id"}).
			AddRow(7, 2, 3, 4).
			AddRow(8, 5, 3, 4)
		mock.ExpectQuery("UPDATE bookings").WillReturnRows(rows)

		jr.ExpireStalePendingBookings()

		assert.Len(t, pub.events, 2)
		assert.Equal(t, events.BookingCancelled, pub.events[0].Type)
		assert.Equal(t, int32(7), pub.events[0].BookingID)
		assert.Equal(t, "request expired", pub.events[0].Reason)
		assert.Equal(t, int32(8), pub.events[1].BookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NothingExpiredPublishesNothing", func(t *testing.T) {
		jr, mock, pub, _ := newTestRunner(t)

		mock.ExpectQuery("UPDATE bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id", "renter_id", "owner_id", "vehicle_id"}))

		jr.ExpireStalePendingBookings()

		assert.Empty(t, pub.events)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSendUpcomingBookingReminders(t *testing.T) {
	t.Run("EmailsEachUpcomingRenter", func(t *testing.T) {
		jr, mock, _, email := newTestRunner(t)

		rows := sqlmock.NewRows([]string{"id", "start_time", "email", "name"}).
			AddRow(1, time.Now().Add(3*time.Hour), "alice@example.com", "City Bolt").
			AddRow(2, time.Now().Add(20*time.Hour), "bob@example.com", "Range Rider")
		mock.ExpectQuery("SELECT b.id, b.start_time").WillReturnRows(rows)

		jr.SendUpcomingBookingReminders()

		assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, email.reminders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeliveryFailureDoesNotAbort", func(t *testing.T) {
		jr, mock, _, email := newTestRunner(t)
		email.err = assert.AnError

		rows := sqlmock.NewRows([]string{"id", "start_time", "email", "name"}).
			AddRow(1, time.Now().Add(3*time.Hour), "alice@example.com", "City Bolt")
		mock.ExpectQuery("SELECT b.id, b.start_time").WillReturnRows(rows)

		jr.SendUpcomingBookingReminders()

		assert.Empty(t, email.reminders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
