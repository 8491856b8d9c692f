package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkSender implements Sender using Postmark's transactional API.
type PostmarkSender struct {
	client        *postmark.Client
	senderAddress string
	senderName    string
}

// NewPostmarkSender creates a new PostmarkSender.
func NewPostmarkSender(serverToken, accountToken, senderAddress, senderName string) (*PostmarkSender, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", ErrInvalidConfig)
	}
	if senderAddress == "" {
		return nil, fmt.Errorf("%w: postmark sender address is required", ErrInvalidConfig)
	}

	return &PostmarkSender{
		client:        postmark.NewClient(serverToken, accountToken),
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via Postmark.
func (p *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:     formatAddress(senderName(msg, p.senderName), p.senderAddress),
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
