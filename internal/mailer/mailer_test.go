package mailer

import (
	"context"
	"log/slog"
	"testing"

	"inkwell/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestMailer_SendUnconfigured(t *testing.T) {
	m := New(&config.Config{}, slog.Default())
	assert.False(t, m.Send(context.Background(), "hello"))
}

func TestMailer_SendUnreachableRelay(t *testing.T) {
	m := New(&config.Config{
		SMTPHost:     "127.0.0.1",
		SMTPPort:     1, // nothing listens here
		SMTPUser:     "owner@example.com",
		SMTPPassword: "secret",
	}, slog.Default())

	assert.False(t, m.Send(context.Background(), "hello from the contact form"))
}

func TestMailer_SendBadAddresses(t *testing.T) {
	m := New(&config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPUser: "not an address",
	}, slog.Default())

	assert.False(t, m.Send(context.Background(), "hello"))
}
