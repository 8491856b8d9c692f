package email

import (
	"context"
	"errors"
	"strings"
)

// Sender is the interface that all email providers must implement.
// Implementations are shared by every in-flight request and must be safe for concurrent use.
type Sender interface {
	// Send sends an email to the specified recipient.
	Send(ctx context.Context, msg Message) error
}

// Verifier is implemented by providers that can check their configuration against the remote service.
// The result is advisory: callers log a failure and keep serving.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Message represents an email message to be sent.
type Message struct {
	FromName string // display name, the provider's sender name when empty
	To       string // recipient email address
	ReplyTo  string // optional Reply-To address
	Subject  string // email subject
	HTMLBody string // HTML email body
	TextBody string // plain-text body
}

// Validate checks the fields every provider needs. Address fields must not contain line
// breaks, which would let them start new headers.
func (m Message) Validate() error {
	switch {
	case m.To == "":
		return errors.Join(ErrInvalidMessage, errors.New("recipient is required"))
	case hasLineBreak(m.To):
		return errors.Join(ErrInvalidMessage, errors.New("recipient contains a line break"))
	case hasLineBreak(m.ReplyTo):
		return errors.Join(ErrInvalidMessage, errors.New("reply-to contains a line break"))
	case m.Subject == "":
		return errors.Join(ErrInvalidMessage, errors.New("subject is required"))
	case m.TextBody == "" && m.HTMLBody == "":
		return errors.Join(ErrInvalidMessage, errors.New("text or HTML body is required"))
	}
	return nil
}

func hasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}

// Email errors
var (
	ErrSendFailed      = errors.New("failed to send email")
	ErrInvalidConfig   = errors.New("invalid email configuration")
	ErrInvalidMessage  = errors.New("invalid email message")
	ErrUnknownProvider = errors.New("unknown email provider")
)
