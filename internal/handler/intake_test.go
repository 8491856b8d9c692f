package handler_test

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpublishing/website/internal/service"
)

const (
	jsonType = "application/json"
	formType = "application/x-www-form-urlencoded"
)

func TestSubmitContact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		text        string
		sent        int
	}{
		{
			name:        "json success",
			contentType: jsonType,
			body:        `{"name":"Ann","email":"ann@x.com","message":"Hi"}`,
			status:      http.StatusOK,
			text:        "Your ideas were good and inspiring! Our support team will contact you shortly.",
			sent:        2,
		},
		{
			name:        "form success",
			contentType: formType,
			body:        url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"Hi"}, "subject": {"Book"}}.Encode(),
			status:      http.StatusOK,
			text:        "Your ideas were good and inspiring! Our support team will contact you shortly.",
			sent:        2,
		},
		{
			name:        "json empty name",
			contentType: jsonType,
			body:        `{"name":"","email":"a@x.com","message":"Hi"}`,
			status:      http.StatusBadRequest,
			text:        "Please provide your name, email, and message.",
		},
		{
			name:        "form whitespace message",
			contentType: formType,
			body:        url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"   "}}.Encode(),
			status:      http.StatusBadRequest,
			text:        "Please provide your name, email, and message.",
		},
		{
			name:        "empty json body",
			contentType: jsonType,
			body:        "",
			status:      http.StatusBadRequest,
			text:        "Please provide your name, email, and message.",
		},
		{
			name:        "malformed json",
			contentType: jsonType,
			body:        `{"name":`,
			status:      http.StatusBadRequest,
			text:        "Please provide your name, email, and message.",
		},
		{
			name:        "unknown fields are ignored",
			contentType: formType,
			body:        url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"Hi"}, "website": {"spam"}}.Encode(),
			status:      http.StatusOK,
			text:        "Your ideas were good and inspiring! Our support team will contact you shortly.",
			sent:        2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &stubSender{}
			srv := newTestServer(t, sender)

			status, body := post(t, srv.URL+"/api/contact", tt.contentType, tt.body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.text, body)
			assert.Len(t, sender.messages(), tt.sent)
		})
	}
}

func TestSubmitAppointment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		text        string
		sent        int
	}{
		{
			name:        "json success",
			contentType: jsonType,
			body:        `{"fullName":"Bo","email":"bo@x.com","phone":"555-1"}`,
			status:      http.StatusOK,
			text:        "Your appointment is scheduled for 10:30 AM - 1:00 PM. Our support team will contact you shortly.",
			sent:        2,
		},
		{
			name:        "form success with optional fields",
			contentType: formType,
			body:        url.Values{"fullName": {"Bo"}, "email": {"bo@x.com"}, "phone": {"555-1"}, "projectOption": {"Editing"}, "message": {"Evenings"}}.Encode(),
			status:      http.StatusOK,
			text:        "Your appointment is scheduled for 10:30 AM - 1:00 PM. Our support team will contact you shortly.",
			sent:        2,
		},
		{
			name:        "json missing email",
			contentType: jsonType,
			body:        `{"fullName":"Bo","phone":"555-1"}`,
			status:      http.StatusBadRequest,
			text:        "Name, email, and phone number are required.",
		},
		{
			name:        "form uses name instead of fullName",
			contentType: formType,
			body:        url.Values{"name": {"Bo"}, "email": {"bo@x.com"}, "phone": {"555-1"}}.Encode(),
			status:      http.StatusBadRequest,
			text:        "Name, email, and phone number are required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &stubSender{}
			srv := newTestServer(t, sender)

			status, body := post(t, srv.URL+"/api/appointment", tt.contentType, tt.body)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.text, body)
			assert.Len(t, sender.messages(), tt.sent)
		})
	}
}

func TestSubmit_NotificationCarriesSubmitter(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	srv := newTestServer(t, sender)

	status, _ := post(t, srv.URL+"/api/appointment", jsonType, `{"fullName":" Bo ","email":"bo@x.com","phone":"555-1"}`)
	require.Equal(t, http.StatusOK, status)

	var notified, confirmed bool
	for _, msg := range sender.messages() {
		switch msg.To {
		case notifyAddress:
			notified = true
			assert.Equal(t, "bo@x.com", msg.ReplyTo)
			assert.Equal(t, "New appointment request", msg.Subject)
			assert.Contains(t, msg.TextBody, "Name: Bo\n")
			assert.Contains(t, msg.TextBody, "Project Option: —")
		case "bo@x.com":
			confirmed = true
			assert.Contains(t, msg.TextBody, "Hi Bo,")
		}
	}
	assert.True(t, notified)
	assert.True(t, confirmed)
}

func TestSubmit_RejectsHeaderInjection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		text        string
	}{
		{
			name:        "json contact",
			path:        "/api/contact",
			contentType: jsonType,
			body:        `{"name":"Ann","email":"ann@x.com\r\nBcc: victim@y.com","message":"Hi"}`,
			text:        "Please provide your name, email, and message.",
		},
		{
			name:        "form appointment",
			path:        "/api/appointment",
			contentType: formType,
			body:        url.Values{"fullName": {"Bo"}, "email": {"bo@x.com\nCc: victim@y.com"}, "phone": {"555-1"}}.Encode(),
			text:        "Name, email, and phone number are required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &stubSender{}
			srv := newTestServer(t, sender)

			status, body := post(t, srv.URL+tt.path, tt.contentType, tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.text, body)
			assert.Empty(t, sender.messages())
		})
	}
}

func TestSubmit_UndecodableBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		contentType string
		body        string
		text        string
	}{
		{
			name:        "malformed json",
			path:        "/api/appointment",
			contentType: jsonType,
			body:        `{"fullName":"Bo","email":`,
			text:        "Name, email, and phone number are required.",
		},
		{
			name: "json body without content type",
			path: "/api/contact",
			body: `{"name":"Ann","email":"ann@x.com","message":"Hi"}`,
			text: "Please provide your name, email, and message.",
		},
		{
			name:        "malformed content type",
			path:        "/api/contact",
			contentType: "application/json; charset",
			body:        `{"name":"Ann","email":"ann@x.com","message":"Hi"}`,
			text:        "Please provide your name, email, and message.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &stubSender{}
			srv := newTestServer(t, sender)

			req, err := http.NewRequest(http.MethodPost, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.text, string(b))
			assert.Empty(t, sender.messages())
		})
	}
}

func TestSubmit_MessageKeptVerbatim(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	srv := newTestServer(t, sender)

	status, _ := post(t, srv.URL+"/api/contact", jsonType, `{"name":"Ann","email":"ann@x.com","message":"  indented\n  code  \n"}`)
	require.Equal(t, http.StatusOK, status)

	var found bool
	for _, msg := range sender.messages() {
		if msg.To == notifyAddress {
			found = true
			assert.True(t, strings.HasSuffix(msg.TextBody, "Message:\n  indented\n  code  \n"), msg.TextBody)
		}
	}
	assert.True(t, found)
}

func TestSubmit_TransportFailureHidesDetails(t *testing.T) {
	t.Parallel()

	sender := &stubSender{fail: map[string]error{
		notifyAddress: errors.New("535 5.7.8 Username and Password not accepted"),
	}}
	srv := newTestServer(t, sender)

	status, body := post(t, srv.URL+"/api/contact", jsonType, `{"name":"Ann","email":"ann@x.com","message":"Hi"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, service.SendFailureMessage, body)
	assert.NotContains(t, body, "535")
	assert.NotContains(t, body, "Password")
}

func TestSubmit_ConfirmationFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	sender := &stubSender{fail: map[string]error{
		"ann@x.com": errors.New("550 mailbox unavailable"),
	}}
	srv := newTestServer(t, sender)

	status, body := post(t, srv.URL+"/api/contact", jsonType, `{"name":"Ann","email":"ann@x.com","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, service.ContactSuccessMessage, body)
}

func TestSubmit_ResponseIsPlainText(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubSender{})

	resp, err := http.Post(srv.URL+"/api/contact", jsonType, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
}

func TestSubmit_WrongMethod(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &stubSender{})

	resp, err := http.Get(srv.URL + "/api/contact")
	require.NoError(t, err)
	defer resp.Body.Close()

	// GET falls through to the static file server, which has no such file
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
