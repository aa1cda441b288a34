package service

import (
	"context"
	"fmt"
	"time"

	"voltrent-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, renterName, vehicleName string) error {
	subject := fmt.Sprintf("New booking request for %s", vehicleName)
	plainText := fmt.Sprintf("%s wants to rent your %s. Open the app to approve or reject the request.", renterName, vehicleName)
	htmlContent := fmt.Sprintf(`<html><body><h2>New Booking Request</h2><p><strong>%s</strong> wants to rent your <strong>%s</strong>.</p><p>Open the app to approve or reject the request.</p></body></html>`, renterName, vehicleName)
	return s.send(ctx, ownerEmail, subject, plainText, htmlContent)
}

func (s *emailService) SendBookingApprovalNotification(ctx context.Context, renterEmail, vehicleName string) error {
	subject := fmt.Sprintf("Your booking for %s is confirmed", vehicleName)
	plainText := fmt.Sprintf("Your booking for %s has been confirmed by the owner.", vehicleName)
	htmlContent := fmt.Sprintf(`<html><body><h2>Booking Confirmed</h2><p>Your booking for <strong>%s</strong> has been confirmed by the owner.</p></body></html>`, vehicleName)
	return s.send(ctx, renterEmail, subject, plainText, htmlContent)
}

func (s *emailService) SendBookingRejectionNotification(ctx context.Context, renterEmail, vehicleName, reason string) error {
	subject := fmt.Sprintf("Your booking for %s was rejected", vehicleName)
	plainText := fmt.Sprintf("Your booking for %s was rejected. Reason: %s", vehicleName, reason)
	htmlContent := fmt.Sprintf(`<html><body><h2>Booking Rejected</h2><p>Your booking for <strong>%s</strong> was rejected.</p><p>Reason: %s</p></body></html>`, vehicleName, reason)
	return s.send(ctx, renterEmail, subject, plainText, htmlContent)
}

func (s *emailService) SendBookingCancellationNotification(ctx context.Context, ownerEmail, renterName, vehicleName, reason string) error {
	subject := fmt.Sprintf("Booking for %s was cancelled", vehicleName)
	plainText := fmt.Sprintf("%s cancelled their booking for %s. Reason: %s", renterName, vehicleName, reason)
	htmlContent := fmt.Sprintf(`<html><body><h2>Booking Cancelled</h2><p><strong>%s</strong> cancelled their booking for <strong>%s</strong>.</p><p>Reason: %s</p></body></html>`, renterName, vehicleName, reason)
	return s.send(ctx, ownerEmail, subject, plainText, htmlContent)
}

func (s *emailService) SendBookingReminderNotification(ctx context.Context, renterEmail, vehicleName string, startTime time.Time) error {
	subject := fmt.Sprintf("Reminder: your booking for %s starts soon", vehicleName)
	plainText := fmt.Sprintf("Your booking for %s starts at %s.", vehicleName, startTime.Format(time.RFC1123))
	htmlContent := fmt.Sprintf(`<html><body><h2>Upcoming Booking</h2><p>Your booking for <strong>%s</strong> starts at <strong>%s</strong>.</p></body></html>`, vehicleName, startTime.Format(time.RFC1123))
	return s.send(ctx, renterEmail, subject, plainText, htmlContent)
}
