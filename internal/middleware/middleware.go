package middleware

import (
	"strings"

	"github.com/gpublishing/website/internal/config"
	"github.com/gpublishing/website/internal/logger"
)

// apiPrefix is where the intake endpoints live. Requests under it answer in the plain-text
// contract the form script expects, even when something goes wrong.
const apiPrefix = "/api/"

// Middleware holds the HTTP middleware of the site
type Middleware struct {
	log *logger.Logger
	cfg *config.Config
}

// New creates a new Middleware instance
func New(log *logger.Logger, cfg *config.Config) *Middleware {
	return &Middleware{
		log: log.WithComponent("http"),
		cfg: cfg,
	}
}

// formKind returns the intake form a path posts to ("contact", "appointment"), or "" outside the API.
func formKind(path string) string {
	kind, ok := strings.CutPrefix(path, apiPrefix)
	if !ok || strings.Contains(kind, "/") {
		return ""
	}
	return kind
}
