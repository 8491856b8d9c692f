package middleware

import (
	"net/http"
	"time"

	"github.com/gpublishing/website/internal/logger"
)

// statusRecorder remembers the status and size of a response for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

// Logger writes one log line per request. Intake requests carry the form kind so a submission
// can be followed from the request line to its dispatch entries.
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		clientIP := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			clientIP = forwarded
		}

		logger.FromContext(r.Context(), m.log).HTTPRequest(
			r.Method,
			r.URL.Path,
			rec.status,
			rec.bytes,
			time.Since(GetStartTime(r.Context())),
			clientIP,
			formKind(r.URL.Path),
		)
	})
}
