package handler

import (
	"net/http"
)

// Health reports that the process is serving. It does not depend on the mail transport.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "OK")
}
