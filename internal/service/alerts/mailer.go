// internal/service/alerts/mailer.go
package alerts

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"storefront-filters/internal/common/aws"
	"storefront-filters/internal/common/config"
)

// SMTPMailer sends plain-text mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", to))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTP.Host, m.cfg.SMTP.Port)

	var auth smtp.Auth
	if m.cfg.SMTP.Username != "" && m.cfg.SMTP.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTP.Username, m.cfg.SMTP.Password, m.cfg.SMTP.Host)
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(builder.String()))
}

// SESMailer sends mail through AWS SES.
type SESMailer struct {
	client *aws.SESClient
	from   string
}

func NewSESMailer(client *aws.SESClient, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.client.SendText(ctx, m.from, to, subject, body)
}

// SNSNotifier sends SMS through AWS SNS.
type SNSNotifier struct {
	client   *aws.SNSClient
	senderID string
}

func NewSNSNotifier(client *aws.SNSClient, senderID string) *SNSNotifier {
	return &SNSNotifier{client: client, senderID: senderID}
}

func (n *SNSNotifier) Send(ctx context.Context, phone, message string) error {
	return n.client.PublishSMS(ctx, phone, message, n.senderID)
}

// NewMailer builds the mail provider named in configuration.
func NewMailer(ctx context.Context, cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "ses":
		client, err := aws.NewSESClient(ctx, cfg.SES.Region)
		if err != nil {
			return nil, err
		}
		return NewSESMailer(client, cfg.From), nil
	case "smtp":
		return NewSMTPMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}
