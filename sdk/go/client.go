// Package gpublishing is a Go client for the GPublishing form intake API.
package gpublishing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the intake client.
type Config struct {
	// BaseURL is the root URL of the site, e.g. "https://gpublishing.example".
	BaseURL string

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with a 60s timeout is used. Submissions wait for
	// the operator notification to be delivered, so keep the timeout generous.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Client submits contact and appointment forms to a running site.
type Client struct {
	cfg Config
}

// NewClient creates a new client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{cfg: cfg}
}

// SubmitContact posts a contact enquiry and returns the message shown to the submitter.
func (c *Client) SubmitContact(ctx context.Context, form ContactForm) (*Reply, error) {
	return c.post(ctx, "/api/contact", form)
}

// SubmitAppointment posts an appointment request and returns the message shown to the submitter.
func (c *Client) SubmitAppointment(ctx context.Context, form AppointmentForm) (*Reply, error) {
	return c.post(ctx, "/api/appointment", form)
}

// Health checks that the site is serving.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("gpublishing: failed to create request: %w", err)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("gpublishing: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return fmt.Errorf("gpublishing: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return nil
}

// post sends a JSON form to the intake API. The response body is plain text.
func (c *Client) post(ctx context.Context, path string, payload any) (*Reply, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gpublishing: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("gpublishing: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gpublishing: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gpublishing: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return &Reply{
		StatusCode: resp.StatusCode,
		Message:    string(body),
		RequestID:  resp.Header.Get("X-Request-ID"),
	}, nil
}
