package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	CORS   CORSConfig   `mapstructure:"cors"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
	Email  EmailConfig  `mapstructure:"email"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// WebRoot overrides the embedded pages and assets with a directory on disk.
	WebRoot      string        `mapstructure:"web_root"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds cross-origin configuration. An empty list disables CORS handling.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SMTPConfig holds the SMTP transport configuration
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// TLSMode is one of "tls" (implicit TLS), "starttls" or "plain"
	TLSMode string        `mapstructure:"tls_mode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the email provider to use: "smtp", "gmail", "resend", "mailgun", "postmark" or "log"
	Provider string `mapstructure:"provider"`
	// SenderName is the display name on outgoing mail and the brand used in confirmations
	SenderName string `mapstructure:"sender_name"`
	// SenderAddress is the "From" address (defaults to smtp.username)
	SenderAddress string `mapstructure:"sender_address"`
	// NotifyAddress is the operator mailbox receiving submissions (defaults to SenderAddress)
	NotifyAddress string              `mapstructure:"notify_address"`
	Gmail         GmailEmailConfig    `mapstructure:"gmail"`
	Resend        ResendEmailConfig   `mapstructure:"resend"`
	Mailgun       MailgunEmailConfig  `mapstructure:"mailgun"`
	Postmark      PostmarkEmailConfig `mapstructure:"postmark"`
}

// GmailEmailConfig holds Gmail API configuration
type GmailEmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// ResendEmailConfig holds Resend API configuration
type ResendEmailConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// MailgunEmailConfig holds Mailgun API configuration
type MailgunEmailConfig struct {
	APIKey string `mapstructure:"api_key"`
	Domain string `mapstructure:"domain"`
	// Region is "us" or "eu"
	Region string `mapstructure:"region"`
}

// PostmarkEmailConfig holds Postmark API configuration
type PostmarkEmailConfig struct {
	ServerToken  string `mapstructure:"server_token"`
	AccountToken string `mapstructure:"account_token"`
}

// legacyEnv maps config keys to the plain environment names used by earlier deployments.
// The prefixed name always wins over the legacy one.
var legacyEnv = map[string]string{
	"server.port":          "PORT",
	"smtp.host":            "SMTP_HOST",
	"smtp.port":            "SMTP_PORT",
	"smtp.username":        "SMTP_USER",
	"smtp.password":        "SMTP_PASS",
	"email.notify_address": "NOTIFY_EMAIL",
}

const envPrefix = "GPUB"

// Load reads configuration from an optional .env file, config file and environment variables.
// Variables already present in the environment take precedence over the .env file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/gpublishing")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.resolveMailboxes()

	return &cfg, nil
}

// resolveMailboxes applies the sender and operator mailbox fallbacks:
// notify_address -> sender_address -> smtp.username.
func (c *Config) resolveMailboxes() {
	if c.Email.SenderAddress == "" {
		c.Email.SenderAddress = c.SMTP.Username
	}
	if c.Email.NotifyAddress == "" {
		c.Email.NotifyAddress = c.Email.SenderAddress
	}
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.web_root", "")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cors.allowed_origins", []string{})

	// SMTP defaults
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.tls_mode", "tls")
	v.SetDefault("smtp.timeout", "30s")

	// Email defaults
	v.SetDefault("email.provider", "smtp")
	v.SetDefault("email.sender_name", "GPublishing Services")
	v.SetDefault("email.sender_address", "")
	v.SetDefault("email.notify_address", "")
	v.SetDefault("email.gmail.credentials_json", "")
	v.SetDefault("email.gmail.client_id", "")
	v.SetDefault("email.gmail.client_secret", "")
	v.SetDefault("email.gmail.refresh_token", "")
	v.SetDefault("email.resend.api_key", "")
	v.SetDefault("email.mailgun.api_key", "")
	v.SetDefault("email.mailgun.domain", "")
	v.SetDefault("email.mailgun.region", "us")
	v.SetDefault("email.postmark.server_token", "")
	v.SetDefault("email.postmark.account_token", "")
}
