package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// formatAddress renders "Name <addr>", encoding the display name when needed.
func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return (&mail.Address{Name: name, Address: addr}).String()
}

// senderName picks the message's display name over the provider default.
func senderName(msg Message, fallback string) string {
	if msg.FromName != "" {
		return msg.FromName
	}
	return fallback
}

// newMessageID returns a globally unique Message-ID for the sender's domain.
func newMessageID(senderAddress string) string {
	domain := "localhost"
	if at := strings.LastIndexByte(senderAddress, '@'); at >= 0 && at < len(senderAddress)-1 {
		domain = senderAddress[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}

// buildMIME renders msg as an RFC 5322 message with CRLF line endings.
// Text parts are quoted-printable so non-ASCII characters survive 7-bit relays.
func buildMIME(from string, msg Message, messageID string, now time.Time) []byte {
	var b bytes.Buffer

	header := func(key, value string) {
		b.WriteString(key + ": " + value + "\r\n")
	}

	header("From", from)
	header("To", msg.To)
	if msg.ReplyTo != "" {
		header("Reply-To", msg.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", messageID)
	header("MIME-Version", "1.0")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		boundary := "alt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
		header("Content-Type", "multipart/alternative; boundary="+boundary)
		b.WriteString("\r\n")
		writePart(&b, boundary, "text/plain", msg.TextBody)
		writePart(&b, boundary, "text/html", msg.HTMLBody)
		b.WriteString("--" + boundary + "--\r\n")
	case msg.HTMLBody != "":
		writeSinglePart(&b, "text/html", msg.HTMLBody)
	default:
		writeSinglePart(&b, "text/plain", msg.TextBody)
	}

	return b.Bytes()
}

func writeSinglePart(b *bytes.Buffer, contentType, body string) {
	b.WriteString("Content-Type: " + contentType + "; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	b.WriteString("\r\n")
	writeQuotedPrintable(b, body)
}

func writePart(b *bytes.Buffer, boundary, contentType, body string) {
	b.WriteString("--" + boundary + "\r\n")
	writeSinglePart(b, contentType, body)
	b.WriteString("\r\n")
}

func writeQuotedPrintable(b *bytes.Buffer, body string) {
	w := quotedprintable.NewWriter(b)
	// Writes into a bytes.Buffer cannot fail.
	_, _ = w.Write([]byte(body))
	_ = w.Close()
}
