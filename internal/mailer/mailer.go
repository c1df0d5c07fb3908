// Package mailer relays contact-form messages to the blog operator's
// own mailbox over SMTP.
package mailer

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/config"

	"github.com/wneessen/go-mail"
)

// subject is fixed; every contact message arrives under the same header.
const subject = "Message from your personal blog"

// sendTimeout bounds the SMTP exchange so a dead relay cannot stall the
// calling request.
const sendTimeout = 5 * time.Second

// Mailer sends best-effort notification emails. Failures are logged
// and reported as a false return, never as an error.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	to       string
	logger   *slog.Logger
}

// New builds a Mailer from the SMTP configuration.
func New(cfg *config.Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		to:       cfg.ContactRecipient(),
		logger:   logger,
	}
}

// Send relays the message body to the operator. It returns false on
// any transport or protocol failure; there is no retry.
func (m *Mailer) Send(ctx context.Context, body string) bool {
	if m.host == "" {
		m.logger.Warn("mail relay not configured, dropping contact message")
		return false
	}

	msg := mail.NewMsg()
	if err := msg.From(m.username); err != nil {
		m.logger.Warn("invalid sender address", slog.String("error", err.Error()))
		return false
	}
	if err := msg.To(m.to); err != nil {
		m.logger.Warn("invalid recipient address", slog.String("error", err.Error()))
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(sendTimeout),
	)
	if err != nil {
		m.logger.Warn("failed to build mail client", slog.String("error", err.Error()))
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Warn("failed to send contact message",
			slog.String("host", m.host),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}
