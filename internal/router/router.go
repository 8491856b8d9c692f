package router

import (
	"net/http"

	"github.com/gpublishing/website/internal/config"
	"github.com/gpublishing/website/internal/handler"
	"github.com/gpublishing/website/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check (never touches the mail transport)
	mux.HandleFunc("GET /health", h.Health)

	// Pages and static assets
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /contact", h.ContactPage)
	mux.Handle("GET /", h.Static())

	// Form intake
	mux.HandleFunc("POST /api/contact", h.SubmitContact)
	mux.HandleFunc("POST /api/appointment", h.SubmitAppointment)

	// Apply middleware stack
	var handler http.Handler = mux

	handler = mw.BodyLimit(cfg.Server.MaxBodyBytes)(handler)

	// CORS (no-op unless origins are configured)
	handler = mw.CORS(cfg.CORS.AllowedOrigins)(handler)

	// Security headers
	handler = mw.SecurityHeaders(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Timing
	handler = mw.Timing(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
