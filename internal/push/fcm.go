// Package push delivers mobile push notifications through Firebase Cloud
// Messaging. Delivery is best-effort; callers treat failures as advisory.
package push

import (
	"context"
	"fmt"

	"voltrent-backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Sender pushes a notification to a single device token. ErrUnregistered
// signals the token should be deleted.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

var ErrUnregistered = fmt.Errorf("device token no longer registered")

type fcmSender struct {
	client *messaging.Client
}

// NewFCMSender builds a sender from a service account credentials file.
func NewFCMSender(ctx context.Context, credentialsFile string) (Sender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}
	return &fcmSender{client: client}, nil
}

func (s *fcmSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	logger.ExternalServiceCall("fcm", "send", "title", title)
	_, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "send", err)
	if err != nil {
		if messaging.IsUnregistered(err) {
			return ErrUnregistered
		}
		return err
	}
	return nil
}
