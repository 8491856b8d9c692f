package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/model"
)

// IntakeService turns a raw form submission into a dispatched pair of emails.
type IntakeService struct {
	composer   *Composer
	dispatcher *Dispatcher
	log        *logger.Logger
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(composer *Composer, dispatcher *Dispatcher, log *logger.Logger) *IntakeService {
	return &IntakeService{
		composer:   composer,
		dispatcher: dispatcher,
		log:        log.WithComponent("intake"),
	}
}

// Submit validates raw, composes both messages and dispatches them.
// Validation failures short-circuit with a 400 outcome before anything is sent.
func (s *IntakeService) Submit(ctx context.Context, kind model.Kind, raw model.RawSubmission) Outcome {
	log := logger.FromContext(ctx, s.log)

	sub, err := Validate(kind, raw)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			log.Debug().Str("kind", string(kind)).Strs("missing", verr.Missing).Strs("invalid", verr.Invalid).Msg("submission rejected")
			return Outcome{Status: http.StatusBadRequest, Text: verr.Message}
		}
		log.Error().Err(err).Msg("failed to validate submission")
		return Outcome{Status: http.StatusInternalServerError, Text: SendFailureMessage}
	}

	return s.dispatcher.Dispatch(ctx, kind, s.composer.Notification(sub), s.composer.Confirmation(sub))
}
