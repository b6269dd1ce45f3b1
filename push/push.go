// Package push delivers device notifications.
package push

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Message is a single push addressed to one device token.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
	GetType() string
}

// LogSender only logs messages. It is used when no FCM credentials are configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Info().
		Str("title", msg.Title).
		Str("body", msg.Body).
		Msg("push delivery skipped: no FCM credentials configured")
	return nil
}

func (LogSender) GetType() string {
	return "log"
}
