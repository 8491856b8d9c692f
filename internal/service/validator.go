package service

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/gpublishing/website/internal/model"
)

// User-facing field requirement messages
const (
	ContactRequiredMessage     = "Please provide your name, email, and message."
	AppointmentRequiredMessage = "Name, email, and phone number are required."
)

// RequiredMessage returns the field requirement message for kind
func RequiredMessage(kind model.Kind) string {
	if kind == model.KindAppointment {
		return AppointmentRequiredMessage
	}
	return ContactRequiredMessage
}

type field struct {
	name  string
	value string
}

// Validate checks the required fields of kind and returns the normalized submission.
// Emptiness is judged after trimming whitespace. The email must be a single bare address
// because it ends up in the Reply-To and To headers.
func Validate(kind model.Kind, raw model.RawSubmission) (model.Submission, error) {
	sub := model.Submission{
		Kind:          kind,
		Email:         strings.TrimSpace(raw.Email),
		Message:       raw.Message,
		Subject:       strings.TrimSpace(raw.Subject),
		Phone:         strings.TrimSpace(raw.Phone),
		ProjectOption: strings.TrimSpace(raw.ProjectOption),
	}

	var required []field
	switch kind {
	case model.KindContact:
		sub.Name = strings.TrimSpace(raw.Name)
		required = []field{{"name", sub.Name}, {"email", sub.Email}, {"message", strings.TrimSpace(sub.Message)}}
	case model.KindAppointment:
		sub.Name = strings.TrimSpace(raw.FullName)
		required = []field{{"fullName", sub.Name}, {"email", sub.Email}, {"phone", sub.Phone}}
	default:
		return model.Submission{}, fmt.Errorf("unknown submission kind %q", kind)
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	var invalid []string
	if sub.Email != "" && !isMailbox(sub.Email) {
		invalid = append(invalid, "email")
	}

	if len(missing) > 0 || len(invalid) > 0 {
		return model.Submission{}, &model.ValidationError{
			Kind:    kind,
			Missing: missing,
			Invalid: invalid,
			Message: RequiredMessage(kind),
		}
	}

	return sub, nil
}

// isMailbox reports whether s is exactly one bare address with no display name or line breaks.
func isMailbox(s string) bool {
	if strings.ContainsAny(s, "\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}
