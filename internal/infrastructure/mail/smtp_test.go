package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

func TestNewMessage(t *testing.T) {
	msg := newMessage("no-reply@hospital.local", domain.Notification{
		To:       "alice@x.com",
		Subject:  "Account Created",
		HTMLBody: "<p>hi</p>",
	})

	assert.Equal(t, []string{"no-reply@hospital.local"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"alice@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Account Created"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
}

func TestSMTPMailer_RejectsEmptyRecipient(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 25, From: "a@b.c"})

	err := m.Send(context.Background(), domain.Notification{Subject: "x"})

	assert.Error(t, err)
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 25, From: "a@b.c"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, domain.Notification{To: "alice@x.com"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	err := m.Send(context.Background(), domain.Notification{To: "alice@x.com", Subject: "Hi", Kind: KindWelcome, HTMLBody: "<p>body</p>"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"alice@x.com"`)
	assert.NotContains(t, buf.String(), "<p>body</p>")
}
