package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer is the only thing the order flow knows about email. Implementations
// report success or failure; the caller decides whether failure is fatal.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends transactional mail through a plain SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}
