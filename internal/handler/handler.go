package handler

import (
	"io"
	"io/fs"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	log     *logger.Logger
	intake  *service.IntakeService
	web     fs.FS
	decoder *schema.Decoder
}

// New creates a new Handler instance. web is the root holding the pages and assets.
func New(log *logger.Logger, intake *service.IntakeService, web fs.FS) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		log:     log.WithComponent("handler"),
		intake:  intake,
		web:     web,
		decoder: decoder,
	}
}

// writeText writes body exactly as given, without a trailing newline
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
