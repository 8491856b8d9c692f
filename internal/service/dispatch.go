package service

import (
	"context"
	"net/http"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/gpublishing/website/internal/email"
	"github.com/gpublishing/website/internal/logger"
	"github.com/gpublishing/website/internal/model"
)

// User-facing outcome texts
const (
	ContactSuccessMessage     = acknowledgement
	AppointmentSuccessMessage = "Your appointment is scheduled for " + appointmentSlot + ". Our support team will contact you shortly."
	SendFailureMessage        = "Oops! An error occurred and your message could not be sent."
)

// ConfirmationStatus is the result of the best-effort confirmation send
type ConfirmationStatus string

const (
	ConfirmationSkipped ConfirmationStatus = "skipped"
	ConfirmationSent    ConfirmationStatus = "sent"
	ConfirmationFailed  ConfirmationStatus = "failed"
)

// ConfirmationResult records what happened to the confirmation. A failure is logged and kept
// here, never turned into an error.
type ConfirmationResult struct {
	Status ConfirmationStatus
	Reason string
}

// Outcome is the single result of a dispatch, ready to be written as an HTTP response
type Outcome struct {
	OK           bool
	Status       int
	Text         string
	Confirmation ConfirmationResult
}

// SuccessMessage returns the reassurance shown to the submitter for kind
func SuccessMessage(kind model.Kind) string {
	if kind == model.KindAppointment {
		return AppointmentSuccessMessage
	}
	return ContactSuccessMessage
}

// Dispatcher sends the notification and the confirmation of one submission concurrently.
// Only the notification decides the outcome.
type Dispatcher struct {
	sender email.Sender
	log    *logger.Logger
}

// NewDispatcher creates a new Dispatcher around the shared sender
func NewDispatcher(sender email.Sender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		log:    log.WithComponent("dispatch"),
	}
}

// Dispatch sends notification and, when non-nil, confirmation in parallel and waits for both.
// A panic in the notification send is re-raised here after both have finished.
func (d *Dispatcher) Dispatch(ctx context.Context, kind model.Kind, notification email.Message, confirmation *email.Message) Outcome {
	log := logger.FromContext(ctx, d.log)

	// The browser going away must not abort an operator notification halfway through.
	ctx = context.WithoutCancel(ctx)

	var (
		wg        conc.WaitGroup
		notifyErr error
		confirmed ConfirmationResult
	)
	wg.Go(func() {
		notifyErr = d.sender.Send(ctx, notification)
	})
	wg.Go(func() {
		confirmed = d.sendConfirmation(ctx, log, kind, confirmation)
	})
	wg.Wait()

	if notifyErr != nil {
		log.Error().
			Err(notifyErr).
			Str("kind", string(kind)).
			Str("confirmation", string(confirmed.Status)).
			Msg("failed to send notification email")
		return Outcome{
			OK:           false,
			Status:       http.StatusInternalServerError,
			Text:         SendFailureMessage,
			Confirmation: confirmed,
		}
	}

	log.Info().
		Str("kind", string(kind)).
		Str("confirmation", string(confirmed.Status)).
		Msg("submission dispatched")

	return Outcome{
		OK:           true,
		Status:       http.StatusOK,
		Text:         SuccessMessage(kind),
		Confirmation: confirmed,
	}
}

// sendConfirmation swallows its own failure, panics included, so it can never affect the notification or the outcome.
func (d *Dispatcher) sendConfirmation(ctx context.Context, log *logger.Logger, kind model.Kind, msg *email.Message) ConfirmationResult {
	if msg == nil {
		return ConfirmationResult{Status: ConfirmationSkipped}
	}

	var (
		pc  panics.Catcher
		err error
	)
	pc.Try(func() {
		err = d.sender.Send(ctx, *msg)
	})
	if r := pc.Recovered(); r != nil {
		err = r.AsError()
	}

	if err != nil {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("failed to send confirmation email")
		return ConfirmationResult{Status: ConfirmationFailed, Reason: err.Error()}
	}

	return ConfirmationResult{Status: ConfirmationSent}
}
