package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/gpublishing/website/internal/email"
	"github.com/gpublishing/website/internal/handler"
	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/service"
)

const notifyAddress = "ops@gpublishing.example"

type stubSender struct {
	mu   sync.Mutex
	sent []email.Message
	fail map[string]error
}

func (s *stubSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.fail[msg.To]
}

func (s *stubSender) messages() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.sent...)
}

var testWeb = fstest.MapFS{
	"index.html":                        {Data: []byte("<h1>Book an appointment</h1>")},
	"contact.html":                      {Data: []byte("<h1>Contact us</h1>")},
	"assets/css/site.css":               {Data: []byte("body{margin:0}")},
	"assets/js/plugins/contact.form.js": {Data: []byte("// form plugin")},
}

func newTestServer(t *testing.T, sender email.Sender) *httptest.Server {
	t.Helper()

	log := logger.Nop()
	intake := service.NewIntakeService(
		service.NewComposer("GPublishing Services", notifyAddress),
		service.NewDispatcher(sender, log),
		log,
	)
	h := handler.New(log, intake, testWeb)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /contact", h.ContactPage)
	mux.Handle("GET /", h.Static())
	mux.HandleFunc("POST /api/contact", h.SubmitContact)
	mux.HandleFunc("POST /api/appointment", h.SubmitAppointment)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, contentType, body string) (int, string) {
	t.Helper()

	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}
