package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/service"
)

const internalErrorText = "An unexpected error occurred"

// Recover turns a panic into a plain-text 500. Intake requests get the same failure text as a
// failed notification, so the form shows its usual error.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			kind := formKind(r.URL.Path)
			logger.FromContext(r.Context(), m.log).Error().
				Interface("error", err).
				Str("stack", string(debug.Stack())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("kind", kind).
				Msg("panic recovered")

			body := internalErrorText
			if kind != "" {
				body = service.SendFailureMessage
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, body)
		}()

		next.ServeHTTP(w, r)
	})
}
