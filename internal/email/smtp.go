package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"regexp"
	"strconv"
	"time"
)

// SMTP TLS modes
const (
	TLSModeImplicit = "tls"
	TLSModeSTARTTLS = "starttls"
	TLSModePlain    = "plain"
)

// SMTPConfig holds the configuration for the SMTP email sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLSMode  string
	// Timeout bounds a whole SMTP transaction, zero means no limit.
	Timeout time.Duration
	// SenderAddress is the envelope and header "From" address.
	SenderAddress string
	// SenderName is the default display name for the sender.
	SenderName string
}

// SMTPSender implements Sender over plain SMTP.
// Every Send dials its own connection, so one SMTPSender can serve any number of requests concurrently.
type SMTPSender struct {
	cfg  SMTPConfig
	auth smtp.Auth
}

// NewSMTPSender creates a new SMTPSender. Authentication is skipped when no username is configured.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: smtp host is required", ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: smtp port must be between 1 and 65535", ErrInvalidConfig)
	}
	switch cfg.TLSMode {
	case TLSModeImplicit, TLSModeSTARTTLS, TLSModePlain:
	default:
		return nil, fmt.Errorf("%w: smtp tls mode must be tls, starttls, or plain", ErrInvalidConfig)
	}
	if cfg.Username != "" && cfg.Password == "" {
		return nil, fmt.Errorf("%w: smtp password is required when a username is set", ErrInvalidConfig)
	}
	if !isValidEmail(cfg.SenderAddress) {
		return nil, fmt.Errorf("%w: sender address must be a valid email address", ErrInvalidConfig)
	}

	s := &SMTPSender{cfg: cfg}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s, nil
}

// Send sends an email over SMTP.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := formatAddress(senderName(msg, s.cfg.SenderName), s.cfg.SenderAddress)
	raw := buildMIME(from, msg, newMessageID(s.cfg.SenderAddress), time.Now())

	client, err := s.connect(ctx)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	defer func() { _ = client.Close() }()

	if err := s.transact(client, msg.To, raw); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// Verify connects and authenticates without sending anything.
func (s *SMTPSender) Verify(ctx context.Context) error {
	client, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Noop(); err != nil {
		return fmt.Errorf("smtp server rejected NOOP: %w", err)
	}
	_ = client.Quit()
	return nil
}

// connect dials the server, negotiates TLS according to the mode and authenticates.
func (s *SMTPSender) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	dialer := &net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := s.deadline(ctx); ok {
		_ = conn.SetDeadline(deadline)
	}

	if s.cfg.TLSMode == TLSModeImplicit {
		tlsConn := tls.Client(conn, s.tlsConfig())
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if s.cfg.TLSMode == TLSModeSTARTTLS {
		if err := client.StartTLS(s.tlsConfig()); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
	}

	return client, nil
}

// deadline returns the earlier of the context deadline and the configured timeout.
func (s *SMTPSender) deadline(ctx context.Context) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if s.cfg.Timeout > 0 {
		byTimeout := time.Now().Add(s.cfg.Timeout)
		if !ok || byTimeout.Before(deadline) {
			return byTimeout, true
		}
	}
	return deadline, ok
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: s.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
}

// transact runs MAIL, RCPT and DATA for a single recipient.
func (s *SMTPSender) transact(client *smtp.Client, to string, raw []byte) error {
	if err := client.Mail(s.cfg.SenderAddress); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// The message is accepted once DATA is closed; some servers hang up before QUIT.
	_ = client.Quit()
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
