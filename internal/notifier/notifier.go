// Package notifier fans booking events out to the persistent notification
// feed, live websocket sessions, mobile push and email. Every leg is
// best-effort: a failed delivery is logged and never affects the booking.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/events"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/push"
	"voltrent-backend/internal/realtime"
	"voltrent-backend/internal/repository"
	"voltrent-backend/internal/service"
)

// RealtimePusher is the slice of the websocket hub the notifier needs.
type RealtimePusher interface {
	PushToUser(userID int32, frame realtime.Frame)
	BroadcastBooking(bookingID int32, frame realtime.Frame)
}

type Notifier struct {
	noteRepo    repository.NotificationRepository
	tokenRepo   repository.DeviceTokenRepository
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	hub         RealtimePusher
	sender      push.Sender
	emailSvc    service.EmailService
	timeout     time.Duration
}

func New(
	noteRepo repository.NotificationRepository,
	tokenRepo repository.DeviceTokenRepository,
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	hub RealtimePusher,
	sender push.Sender,
	emailSvc service.EmailService,
) *Notifier {
	return &Notifier{
		noteRepo:    noteRepo,
		tokenRepo:   tokenRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
		hub:         hub,
		sender:      sender,
		emailSvc:    emailSvc,
		timeout:     10 * time.Second,
	}
}

// HandleBookingEvent implements events.Handler. Runs on the bus dispatcher
// goroutine, detached from any request context.
func (n *Notifier) HandleBookingEvent(ev events.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	receiverID, noteType, wsType, title := route(ev)
	if receiverID == 0 {
		return
	}

	vehicleName := n.vehicleName(ctx, ev.VehicleID)
	message := messageFor(ev, vehicleName)

	bookingID := ev.BookingID
	note := &domain.Notification{
		ReceiverID: receiverID,
		SenderID:   ev.ActorID,
		BookingID:  &bookingID,
		Type:       noteType,
		Title:      title,
		Message:    message,
		Attributes: map[string]string{
			"booking_id": strconv.Itoa(int(ev.BookingID)),
			"vehicle_id": strconv.Itoa(int(ev.VehicleID)),
			"status":     ev.Status,
		},
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to persist notification", "booking_id", ev.BookingID, "error", err)
	}

	n.hub.PushToUser(receiverID, realtime.Frame{Type: wsType, Payload: note})
	n.hub.BroadcastBooking(ev.BookingID, realtime.Frame{
		Type: "booking_status_changed",
		Payload: map[string]any{
			"booking_id": ev.BookingID,
			"status":     ev.Status,
		},
	})

	n.pushToDevices(ctx, receiverID, title, message, note.Attributes)
	n.email(ctx, ev, receiverID, vehicleName)
}

// route maps an event to the counterpart who should hear about it.
func route(ev events.BookingEvent) (receiverID int32, noteType domain.NotificationType, wsType, title string) {
	switch ev.Type {
	case events.BookingCreated:
		return ev.OwnerID, domain.NotificationTypeBookingRequest, "booking_request", "New booking request"
	case events.BookingApproved:
		return ev.RenterID, domain.NotificationTypeBookingConfirmed, "booking_confirmed", "Booking confirmed"
	case events.BookingRejected:
		return ev.RenterID, domain.NotificationTypeBookingRejected, "booking_rejected", "Booking rejected"
	case events.BookingCancelled:
		return ev.OwnerID, domain.NotificationTypeBookingCancelled, "booking_cancelled", "Booking cancelled"
	}
	return 0, "", "", ""
}

func messageFor(ev events.BookingEvent, vehicleName string) string {
	switch ev.Type {
	case events.BookingCreated:
		return fmt.Sprintf("You have a new booking request for %s.", vehicleName)
	case events.BookingApproved:
		return fmt.Sprintf("Your booking for %s has been confirmed.", vehicleName)
	case events.BookingRejected:
		return fmt.Sprintf("Your booking for %s was rejected: %s", vehicleName, ev.Reason)
	case events.BookingCancelled:
		return fmt.Sprintf("The booking for %s was cancelled: %s", vehicleName, ev.Reason)
	}
	return ""
}

func (n *Notifier) vehicleName(ctx context.Context, vehicleID int32) string {
	vehicle, err := n.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return "your vehicle"
	}
	return vehicle.Name
}

func (n *Notifier) pushToDevices(ctx context.Context, userID int32, title, body string, data map[string]string) {
	if n.sender == nil {
		return
	}
	tokens, err := n.tokenRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list device tokens", "user_id", userID, "error", err)
		return
	}
	for _, t := range tokens {
		err := n.sender.Send(ctx, t.Token, title, body, data)
		if errors.Is(err, push.ErrUnregistered) {
			if delErr := n.tokenRepo.DeleteByToken(ctx, t.Token); delErr != nil {
				logger.Error("Failed to delete stale device token", "user_id", userID, "error", delErr)
			}
			continue
		}
		if err != nil {
			logger.Warn("Push delivery failed", "user_id", userID, "error", err)
		}
	}
}

func (n *Notifier) email(ctx context.Context, ev events.BookingEvent, receiverID int32, vehicleName string) {
	if n.emailSvc == nil {
		return
	}
	receiver, err := n.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		logger.Error("Failed to load notification receiver", "user_id", receiverID, "error", err)
		return
	}

	switch ev.Type {
	case events.BookingCreated:
		renter, err := n.userRepo.GetByID(ctx, ev.RenterID)
		if err != nil {
			return
		}
		err = n.emailSvc.SendBookingRequestNotification(ctx, receiver.Email, renter.Name, vehicleName)
		logEmail(err, ev)
	case events.BookingApproved:
		err = n.emailSvc.SendBookingApprovalNotification(ctx, receiver.Email, vehicleName)
		logEmail(err, ev)
	case events.BookingRejected:
		err = n.emailSvc.SendBookingRejectionNotification(ctx, receiver.Email, vehicleName, ev.Reason)
		logEmail(err, ev)
	case events.BookingCancelled:
		renter, err := n.userRepo.GetByID(ctx, ev.RenterID)
		if err != nil {
			return
		}
		err = n.emailSvc.SendBookingCancellationNotification(ctx, receiver.Email, renter.Name, vehicleName, ev.Reason)
		logEmail(err, ev)
	}
}

func logEmail(err error, ev events.BookingEvent) {
	if err != nil {
		logger.Warn("Email delivery failed", "type", ev.Type, "booking_id", ev.BookingID, "error", err)
	}
}
