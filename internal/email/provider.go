package email

import (
	"context"
	"fmt"

	"github.com/gpublishing/website/internal/config"
	"github.com/gpublishing/website/internal/logger"
)

// Provider names accepted in email.provider
const (
	ProviderSMTP     = "smtp"
	ProviderGmail    = "gmail"
	ProviderResend   = "resend"
	ProviderMailgun  = "mailgun"
	ProviderPostmark = "postmark"
	ProviderLog      = "log"
)

// New builds the Sender selected by cfg.Email.Provider. It is called once at startup
// and the result is shared by all requests.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (Sender, error) {
	e := cfg.Email

	switch e.Provider {
	case ProviderSMTP, "":
		return sender(NewSMTPSender(SMTPConfig{
			Host:          cfg.SMTP.Host,
			Port:          cfg.SMTP.Port,
			Username:      cfg.SMTP.Username,
			Password:      cfg.SMTP.Password,
			TLSMode:       cfg.SMTP.TLSMode,
			Timeout:       cfg.SMTP.Timeout,
			SenderAddress: e.SenderAddress,
			SenderName:    e.SenderName,
		}))
	case ProviderGmail:
		if e.Gmail.CredentialsJSON != "" {
			return sender(NewGmailSender(ctx, GmailConfig{
				CredentialsJSON: e.Gmail.CredentialsJSON,
				SenderAddress:   e.SenderAddress,
				SenderName:      e.SenderName,
			}))
		}
		return sender(NewGmailSenderWithToken(ctx, e.Gmail.ClientID, e.Gmail.ClientSecret, e.Gmail.RefreshToken, e.SenderAddress, e.SenderName))
	case ProviderResend:
		return sender(NewResendSender(e.Resend.APIKey, e.SenderAddress, e.SenderName))
	case ProviderMailgun:
		return sender(NewMailgunSender(e.Mailgun.APIKey, e.Mailgun.Domain, e.Mailgun.Region, e.SenderAddress, e.SenderName))
	case ProviderPostmark:
		return sender(NewPostmarkSender(e.Postmark.ServerToken, e.Postmark.AccountToken, e.SenderAddress, e.SenderName))
	case ProviderLog:
		return NewLogSender(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, e.Provider)
	}
}

// sender keeps a failed constructor from leaking a typed nil into the interface.
func sender[T Sender](s T, err error) (Sender, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
