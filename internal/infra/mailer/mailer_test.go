package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
)

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, Username: "u", Password: "p", From: "salon@example.com"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	require.NoError(t, m.Send(context.Background(), "carla@example.com", "Reminder", "line one\nline two"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"carla@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: salon@example.com\r\n"))
	assert.Contains(t, gotMsg, "Subject: Reminder\r\n")
	assert.Contains(t, gotMsg, "\r\n\r\nline one\r\nline two")
}

func TestSMTPMailer_RejectsHeaderInjection(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 25})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("must not send")
		return nil
	}

	assert.Error(t, m.Send(context.Background(), "a@b.c\r\nBcc: x@y.z", "hi", "body"))
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(zap.NewNop()).Send(context.Background(), "a@b.c", "s", "b"))
}
