package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/model"
	"github.com/gpublishing/website/internal/service"
)

const multipartMaxMemory = 1 << 20

// SubmitContact handles POST /api/contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, model.KindContact)
}

// SubmitAppointment handles POST /api/appointment
func (h *Handler) SubmitAppointment(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, model.KindAppointment)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	raw, err := h.decodeSubmission(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeText(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		logger.FromContext(r.Context(), h.log).Debug().Err(err).Str("kind", string(kind)).Msg("undecodable submission")
		writeText(w, http.StatusBadRequest, service.RequiredMessage(kind))
		return
	}

	outcome := h.intake.Submit(r.Context(), kind, raw)
	writeText(w, outcome.Status, outcome.Text)
}

// decodeSubmission reads a JSON, urlencoded or multipart body into a RawSubmission.
// An empty body decodes to an empty submission.
func (h *Handler) decodeSubmission(r *http.Request) (model.RawSubmission, error) {
	var raw model.RawSubmission

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(ct)
		if err != nil {
			return raw, fmt.Errorf("invalid content type: %w", err)
		}
	}

	switch mediaType {
	case "application/json":
		if r.Body == nil {
			return raw, nil
		}
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return raw, fmt.Errorf("invalid JSON body: %w", err)
		}
		return raw, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
			return raw, fmt.Errorf("invalid multipart body: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return raw, fmt.Errorf("invalid form body: %w", err)
		}
	}

	if err := h.decoder.Decode(&raw, r.PostForm); err != nil {
		return raw, fmt.Errorf("invalid form fields: %w", err)
	}
	return raw, nil
}
