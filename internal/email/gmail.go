package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailConfig holds the configuration for the Gmail email sender.
type GmailConfig struct {
	// CredentialsJSON is the OAuth2 service account credentials JSON.
	CredentialsJSON string
	// SenderAddress is the email address emails are sent from.
	SenderAddress string
	// SenderName is the default display name for the sender.
	SenderName string
}

// GmailSender implements Sender using the Gmail API.
type GmailSender struct {
	service       *gmail.Service
	tokens        oauth2.TokenSource
	senderAddress string
	senderName    string
}

// NewGmailSender creates a new GmailSender from a service account with domain-wide delegation.
func NewGmailSender(ctx context.Context, cfg GmailConfig) (*GmailSender, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("%w: gmail credentials JSON is required", ErrInvalidConfig)
	}
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("%w: gmail sender address is required", ErrInvalidConfig)
	}

	jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("%w: gmail: failed to parse credentials: %v", ErrInvalidConfig, err)
	}

	// Impersonate the sender mailbox
	jwtConfig.Subject = cfg.SenderAddress

	tokens := jwtConfig.TokenSource(ctx)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, tokens)))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		tokens:        tokens,
		senderAddress: cfg.SenderAddress,
		senderName:    cfg.SenderName,
	}, nil
}

// NewGmailSenderWithToken creates a GmailSender using OAuth2 client credentials + refresh token.
// This is useful for personal Gmail accounts without domain-wide delegation.
func NewGmailSenderWithToken(ctx context.Context, clientID, clientSecret, refreshToken, senderAddress, senderName string) (*GmailSender, error) {
	if senderAddress == "" {
		return nil, fmt.Errorf("%w: gmail sender address is required", ErrInvalidConfig)
	}
	if clientID == "" || refreshToken == "" {
		return nil, fmt.Errorf("%w: gmail client id and refresh token are required", ErrInvalidConfig)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}

	tokens := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, tokens)))
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailSender{
		service:       svc,
		tokens:        tokens,
		senderAddress: senderAddress,
		senderName:    senderName,
	}, nil
}

// Send sends an email via the Gmail API.
func (g *GmailSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := formatAddress(senderName(msg, g.senderName), g.senderAddress)
	raw := buildMIME(from, msg, newMessageID(g.senderAddress), time.Now())

	gmailMsg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	if _, err := g.service.Users.Messages.Send("me", gmailMsg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: gmail: %v", ErrSendFailed, err)
	}

	return nil
}

// Verify checks that the credentials can mint an access token.
func (g *GmailSender) Verify(ctx context.Context) error {
	if _, err := g.tokens.Token(); err != nil {
		return fmt.Errorf("gmail: failed to obtain access token: %w", err)
	}
	return nil
}
