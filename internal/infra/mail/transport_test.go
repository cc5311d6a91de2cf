package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/lead-intake/internal/infra/integration/resend"
)

func TestSMTPTransport_BuildsMessage(t *testing.T) {
	var captured *gomail.Message
	transport := NewSMTPTransport("smtp.example.com", 587, "user", "pass")
	transport.send = func(m *gomail.Message) error {
		captured = m
		return nil
	}

	err := transport.Deliver(context.Background(), Message{
		From:    "hello@example.com",
		To:      "ana@example.com",
		Subject: "Thanks for taking the quiz",
		HTML:    "<p>Hi Ana</p>",
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, []string{"hello@example.com"}, captured.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, captured.GetHeader("To"))
	assert.Equal(t, []string{"Thanks for taking the quiz"}, captured.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err = captured.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "text/html")
}

func TestSMTPTransport_SendFailure(t *testing.T) {
	transport := NewSMTPTransport("smtp.example.com", 587, "", "")
	transport.send = func(*gomail.Message) error { return errors.New("dial tcp: refused") }

	err := transport.Deliver(context.Background(), Message{To: "a@x.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestSMTPTransport_CanceledContext(t *testing.T) {
	called := false
	transport := NewSMTPTransport("smtp.example.com", 587, "", "")
	transport.send = func(*gomail.Message) error {
		called = true
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := transport.Deliver(ctx, Message{To: "a@x.com"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestResendTransport_Deliver(t *testing.T) {
	var body resend.SendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer server.Close()

	transport := NewResendTransport(resend.NewClient("re_key").WithBaseURL(server.URL))
	err := transport.Deliver(context.Background(), Message{
		From:    "hello@example.com",
		To:      "ana@example.com",
		Subject: "Hi",
		HTML:    "<p>x</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ana@example.com"}, body.To)
	assert.Equal(t, "hello@example.com", body.From)
}
