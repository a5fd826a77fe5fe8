// Package mailer sends the password-reset mail over plain SMTP. The corpus
// carries no dedicated mail library, so delivery sits directly on net/smtp
// behind the ports.Mailer contract.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
)

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Password reset\r\n\r\n"+
			"You requested a password reset.\r\n\r\n"+
			"Open the link below to choose a new password. It expires shortly.\r\n\r\n%s\r\n",
		m.from, to, resetURL)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.from, []string{to}, []byte(body))
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
