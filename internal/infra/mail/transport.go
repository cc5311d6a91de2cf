package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/lead-intake/internal/infra/integration/resend"
)

type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

// SMTPTransport sends through a plain SMTP relay.
type SMTPTransport struct {
	Host     string
	Port     int
	User     string
	Password string

	send func(m *gomail.Message) error
}

func NewSMTPTransport(host string, port int, user, password string) *SMTPTransport {
	t := &SMTPTransport{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
	t.send = func(m *gomail.Message) error {
		return gomail.NewDialer(t.Host, t.Port, t.User, t.Password).DialAndSend(m)
	}
	return t
}

func (t *SMTPTransport) Deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := t.send(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// ResendTransport sends through the Resend HTTP API.
type ResendTransport struct {
	client *resend.Client
}

func NewResendTransport(client *resend.Client) *ResendTransport {
	return &ResendTransport{client: client}
}

func (t *ResendTransport) Deliver(ctx context.Context, msg Message) error {
	_, err := t.client.SendEmail(ctx, resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	return err
}
