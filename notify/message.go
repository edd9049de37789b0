/*
Package notify delivers the robot's two e-mails: the hours summary (with
the workbook attached) and the run-status notification.

PURPOSE OF THIS FILE (message.go):
  Assembles RFC 2045/2046 MIME messages by hand. The reference stacks
  around this codebase carry no mail library, and the need here is
  narrow: one HTML part plus at most one base64 attachment.

SEE ALSO:
  - mailer.go: SMTP delivery of a built Message
  - status.go: run-status e-mail content
*/
package notify

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"
)

// Attachment is an optional file carried by a Message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a fully addressed e-mail ready for delivery.
type Message struct {
	From       string
	FromName   string
	To         []string
	Cc         []string
	Subject    string
	HTML       string
	Attachment *Attachment
}

// Recipients returns every envelope recipient (To + Cc).
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	return out
}

// Bytes renders the full RFC 822 message, multipart when an attachment
// is present.
func (m Message) Bytes() []byte {
	var buf bytes.Buffer

	from := m.From
	if m.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.FromName), m.From)
	}
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(m.Cc, ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if m.Attachment == nil {
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
		buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
		buf.WriteString(m.HTML)
		return buf.Bytes()
	}

	const boundary = "hours-reporter-boundary-7f3a9c"
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	buf.WriteString(m.HTML)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/vnd.openxmlformats-officedocument.spreadsheetml.sheet\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", m.Attachment.Filename)

	encoded := base64.StdEncoding.EncodeToString(m.Attachment.Content)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}
