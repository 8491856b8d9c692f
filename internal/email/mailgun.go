package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

const mailgunSendTimeout = 30 * time.Second

// MailgunSender implements Sender using the Mailgun API.
type MailgunSender struct {
	client        *mailgun.MailgunImpl
	senderAddress string
	senderName    string
}

// NewMailgunSender creates a new MailgunSender. Region "eu" selects the EU API endpoint.
func NewMailgunSender(apiKey, domain, region, senderAddress, senderName string) (*MailgunSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: mailgun API key is required", ErrInvalidConfig)
	}
	if domain == "" {
		return nil, fmt.Errorf("%w: mailgun domain is required", ErrInvalidConfig)
	}
	if senderAddress == "" {
		return nil, fmt.Errorf("%w: mailgun sender address is required", ErrInvalidConfig)
	}

	mg := mailgun.NewMailgun(domain, apiKey)
	if region == "eu" {
		mg.SetAPIBase(mailgun.APIBaseEU)
	}

	return &MailgunSender{
		client:        mg,
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via Mailgun.
func (p *MailgunSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := formatAddress(senderName(msg, p.senderName), p.senderAddress)
	m := p.client.NewMessage(from, msg.Subject, msg.TextBody, msg.To)
	if msg.HTMLBody != "" {
		m.SetHtml(msg.HTMLBody)
	}
	if msg.ReplyTo != "" {
		m.SetReplyTo(msg.ReplyTo)
	}

	ctx, cancel := context.WithTimeout(ctx, mailgunSendTimeout)
	defer cancel()

	if _, _, err := p.client.Send(ctx, m); err != nil {
		return fmt.Errorf("%w: mailgun: %v", ErrSendFailed, err)
	}
	return nil
}
