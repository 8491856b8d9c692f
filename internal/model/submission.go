package model

import (
	"errors"
	"strings"
)

// Kind identifies which form a submission came from
type Kind string

const (
	KindContact     Kind = "contact"
	KindAppointment Kind = "appointment"
)

// Validation sentinels wrapped by ValidationError
var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidFields         = errors.New("invalid fields")
)

// RawSubmission carries every field either form may post. All fields are optional and untrusted.
type RawSubmission struct {
	Name          string `json:"name" schema:"name"`
	FullName      string `json:"fullName" schema:"fullName"`
	Email         string `json:"email" schema:"email"`
	Phone         string `json:"phone" schema:"phone"`
	Subject       string `json:"subject" schema:"subject"`
	ProjectOption string `json:"projectOption" schema:"projectOption"`
	Message       string `json:"message" schema:"message"`
}

// Submission is a validated submission. Every field is trimmed except Message, which is kept
// exactly as submitted. Name holds the contact "name" or the appointment "fullName".
type Submission struct {
	Kind          Kind
	Name          string
	Email         string
	Phone         string
	Subject       string
	ProjectOption string
	Message       string
}

// ValidationError reports which required fields were blank and which were malformed
type ValidationError struct {
	Kind    Kind
	Missing []string
	Invalid []string
	// Message is the user-facing explanation of what is required
	Message string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, ErrMissingRequiredFields.Error()+": "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, ErrInvalidFields.Error()+": "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	var errs []error
	if len(e.Missing) > 0 {
		errs = append(errs, ErrMissingRequiredFields)
	}
	if len(e.Invalid) > 0 {
		errs = append(errs, ErrInvalidFields)
	}
	return errs
}
