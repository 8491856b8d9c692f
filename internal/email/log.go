package email

import (
	"context"

	"github.com/gpublishing/website/internal/logger"
)

// LogSender implements Sender for local development by logging messages instead of delivering them.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.WithComponent("email_log")}
}

// Send logs the message envelope at info level and the body at debug level.
func (l *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	l.log.Info().
		Str("to", msg.To).
		Str("reply_to", msg.ReplyTo).
		Str("subject", msg.Subject).
		Msg("email not delivered (log provider)")
	l.log.Debug().Str("to", msg.To).Str("body", msg.TextBody).Msg("email body")

	return nil
}

// Verify always succeeds.
func (l *LogSender) Verify(context.Context) error {
	return nil
}
