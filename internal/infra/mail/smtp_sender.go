// Package mail implements the outbound email sender over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"stencil/config"
	"stencil/internal/domain/service"
	"stencil/internal/errors"
)

// smtpSender is a concrete implementation of the EmailSender interface.
// It speaks implicit TLS, which SMTP submission on port 465 requires.
type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender is the constructor for smtpSender.
func NewSMTPSender(cfg *config.Config) service.EmailSender {
	from := cfg.SMTP.From
	if from == "" {
		from = cfg.SMTP.Username
	}

	return &smtpSender{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
		from:     from,
	}
}

// Send delivers one email message. The context bounds the TLS dial; the SMTP
// conversation itself runs over the established connection.
func (s *smtpSender) Send(ctx context.Context, msg service.EmailMessage) error {
	payload := []byte(
		fmt.Sprintf("From: %s\r\n", s.from) +
			fmt.Sprintf("To: %s\r\n", msg.To) +
			fmt.Sprintf("Subject: %s\r\n", msg.Subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			msg.Body,
	)

	serverAddr := fmt.Sprintf("%s:%d", s.host, s.port)
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.host}}

	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return errors.Wrap(err, "failed to dial SMTP server")
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return errors.Wrap(err, "SMTP auth failed")
	}

	if err := client.Mail(s.from); err != nil {
		return errors.Wrap(err, "failed to set SMTP sender")
	}
	if err := client.Rcpt(msg.To); err != nil {
		return errors.Wrap(err, "failed to set SMTP recipient")
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "failed to open SMTP data writer")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "failed to write SMTP message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to finish SMTP message")
	}

	return nil
}
