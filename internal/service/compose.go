package service

import (
	"fmt"
	"strings"

	"github.com/gpublishing/website/internal/email"
	"github.com/gpublishing/website/internal/model"
)

const (
	// Placeholder rendered for empty optional fields
	Placeholder = "—"

	noSubject       = "No subject provided"
	appointmentSlot = "10:30 AM - 1:00 PM"
	acknowledgement = "Your ideas were good and inspiring! Our support team will contact you shortly."
)

// Composer builds the operator notification and the submitter confirmation for a submission
type Composer struct {
	brand         string
	notifyAddress string
}

// NewComposer creates a Composer. brand is the sender display name used in subjects and
// signatures, notifyAddress the resolved operator mailbox.
func NewComposer(brand, notifyAddress string) *Composer {
	return &Composer{
		brand:         brand,
		notifyAddress: notifyAddress,
	}
}

// Notification builds the operator alert. Reply-To is the submitter so the operator can answer directly.
func (c *Composer) Notification(sub model.Submission) email.Message {
	msg := email.Message{
		FromName: c.brand,
		To:       c.notifyAddress,
		ReplyTo:  sub.Email,
	}

	switch sub.Kind {
	case model.KindAppointment:
		msg.Subject = "New appointment request"
		msg.TextBody = fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nProject Option: %s\nMessage:\n%s",
			sub.Name, sub.Email, sub.Phone, orPlaceholder(sub.ProjectOption), orPlaceholder(sub.Message))
	default:
		subject := singleLine(sub.Subject)
		if subject == "" {
			subject = noSubject
		}
		msg.Subject = "New contact enquiry: " + subject
		msg.TextBody = fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\nMessage:\n%s",
			sub.Name, sub.Email, orPlaceholder(sub.Subject), sub.Message)
	}

	return msg
}

// Confirmation builds the courtesy acknowledgement for the submitter, or nil when there is no address to send it to.
func (c *Composer) Confirmation(sub model.Submission) *email.Message {
	if sub.Email == "" {
		return nil
	}

	name := sub.Name
	if name == "" {
		name = "there"
	}

	msg := &email.Message{
		FromName: c.brand,
		To:       sub.Email,
	}

	switch sub.Kind {
	case model.KindAppointment:
		msg.Subject = "Your appointment request with " + c.brand
		msg.TextBody = fmt.Sprintf("Hi %s,\n\n%s\nYour appointment is scheduled for %s.\n\nBest regards,\n%s",
			name, acknowledgement, appointmentSlot, c.brand)
	default:
		msg.Subject = "Thanks for contacting " + c.brand
		msg.TextBody = fmt.Sprintf("Hi %s,\n\n%s\n\nBest regards,\n%s", name, acknowledgement, c.brand)
	}

	return msg
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// singleLine folds line breaks so submitter text can sit in a header
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
