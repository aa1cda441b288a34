package jobs

import (
	"context"
	"time"

	"voltrent-backend/internal/events"
	"voltrent-backend/internal/logger"
)

// ExpireStalePendingBookings cancels PENDING bookings whose start time has
// already passed. The owner never acted on them, so the slot is released and
// both parties are notified through the regular event fan-out.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("ExpireStalePendingBookings", func() {
		ctx := context.Background()

		query := `
			UPDATE bookings
			SET status = 'CANCELLED',
			    cancellation_reason = 'request expired',
			    cancelled_at = NOW(),
			    updated_on = NOW()
			WHERE status = 'PENDING'
			  AND start_time < $1
			RETURNING id, renter_id, owner_id, vehicle_id
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now())
		if err != nil {
			logger.Error("Failed to expire pending bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var id, renterID, ownerID, vehicleID int32
			if err := rows.Scan(&id, &renterID, &ownerID, &vehicleID); err != nil {
				logger.Error("Failed to scan expired booking", "error", err)
				continue
			}
			count++

			jr.publisher.Publish(events.BookingEvent{
				Type:       events.BookingCancelled,
				BookingID:  id,
				VehicleID:  vehicleID,
				RenterID:   renterID,
				OwnerID:    ownerID,
				ActorID:    renterID,
				Status:     "CANCELLED",
				Reason:     "request expired",
				OccurredAt: time.Now(),
			})
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired bookings", "error", err)
			return
		}

		logger.Info("Expired stale pending bookings", "count", count)
	})
}

// SendUpcomingBookingReminders emails renters whose CONFIRMED bookings start
// within the next 24 hours.
func (jr *JobRunner) SendUpcomingBookingReminders() {
	jr.runWithRecovery("SendUpcomingBookingReminders", func() {
		ctx := context.Background()

		query := `
			SELECT b.id, b.start_time, u.email, v.name
			FROM bookings b
			JOIN users u ON u.id = b.renter_id
			JOIN vehicles v ON v.id = b.vehicle_id
			WHERE b.status = 'CONFIRMED'
			  AND b.start_time BETWEEN $1 AND $2
		`

		now := time.Now()
		rows, err := jr.db.QueryContext(ctx, query, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to load upcoming bookings", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var bookingID int32
			var startTime time.Time
			var email, vehicleName string
			if err := rows.Scan(&bookingID, &startTime, &email, &vehicleName); err != nil {
				logger.Error("Failed to scan upcoming booking", "error", err)
				continue
			}

			if err := jr.emailSvc.SendBookingReminderNotification(ctx, email, vehicleName, startTime); err != nil {
				logger.Warn("Failed to send booking reminder", "booking_id", bookingID, "error", err)
				continue
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming bookings", "error", err)
			return
		}

		logger.Info("Sent booking reminders", "count", count)
	})
}
