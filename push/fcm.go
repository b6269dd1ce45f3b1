package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// FCMSender sends messages through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender builds a sender from a service-account credentials file.
func NewFCMSender(ctx context.Context, credentialsFile string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing messaging client: %w", err)
	}

	return &FCMSender{client: client}, nil
}

// Send blocks until FCM acknowledges the message or ctx is done.
func (s *FCMSender) Send(ctx context.Context, msg Message) error {
	id, err := s.client.Send(ctx, &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return fmt.Errorf("sending FCM message: %w", err)
	}

	log.Debug().Str("message_id", id).Msg("FCM message sent")
	return nil
}

func (s *FCMSender) GetType() string {
	return "fcm"
}
