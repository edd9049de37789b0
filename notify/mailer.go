/*
mailer.go - SMTP delivery

PURPOSE:
  The Mailer interface is the seam the orchestrator depends on; tests
  substitute a recording fake. SMTPMailer is the production
  implementation: plain-auth STARTTLS submission through net/smtp, the
  same posture the portal's mail relay expects.
*/
package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// Mailer sends a built message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers through an SMTP submission endpoint.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
}

var _ Mailer = (*SMTPMailer)(nil)

// Send submits the message. smtp.SendMail negotiates STARTTLS when the
// server offers it.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if len(msg.Recipients()) == 0 {
		return fmt.Errorf("message %q has no recipients", msg.Subject)
	}

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var auth smtp.Auth
	if m.Password != "" {
		user := m.Username
		if user == "" {
			user = msg.From
		}
		auth = smtp.PlainAuth("", user, m.Password, m.Host)
	}
	if err := smtp.SendMail(addr, auth, msg.From, msg.Recipients(), msg.Bytes()); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", addr, err)
	}
	return nil
}
