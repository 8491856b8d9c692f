package gpublishing

// ContactForm is the payload of POST /api/contact.
// Name, Email and Message are required.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// AppointmentForm is the payload of POST /api/appointment.
// FullName, Email and Phone are required.
type AppointmentForm struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ProjectOption string `json:"projectOption,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Reply is a successful submission response.
type Reply struct {
	StatusCode int
	// Message is the text the site shows to the submitter.
	Message string
	// RequestID correlates the submission with the server logs.
	RequestID string
}
