package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// EmailSender provides a testable abstraction over SES delivery.
type EmailSender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them. It is
// used when SES is not configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	log.Ctx(ctx).Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Int("body_bytes", len(body)).
		Msg("Email delivery disabled; message logged only")
	return nil
}
