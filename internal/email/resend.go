package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client        *resend.Client
	senderAddress string
	senderName    string
}

// NewResendSender creates a new ResendSender.
func NewResendSender(apiKey, senderAddress, senderName string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: resend API key is required", ErrInvalidConfig)
	}
	if senderAddress == "" {
		return nil, fmt.Errorf("%w: resend sender address is required", ErrInvalidConfig)
	}

	return &ResendSender{
		client:        resend.NewClient(apiKey),
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via Resend.
func (p *ResendSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    formatAddress(senderName(msg, p.senderName), p.senderAddress),
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.TextBody,
		Html:    msg.HTMLBody,
	}

	if _, err := p.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("%w: resend: %v", ErrSendFailed, err)
	}
	return nil
}
