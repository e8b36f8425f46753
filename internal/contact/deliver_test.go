package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJSDeliver(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	e := &EmailJS{
		Endpoint:   srv.URL,
		ServiceID:  "service_x",
		TemplateID: "template_y",
		PublicKey:  "pub",
		Client:     srv.Client(),
	}
	require.NoError(t, e.Deliver(context.Background(), validMessage()))

	assert.Equal(t, "service_x", got.ServiceID)
	assert.Equal(t, "template_y", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Empty(t, got.AccessToken)
	assert.Equal(t, validMessage(), got.TemplateParams)
}

func TestEmailJSRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user ID is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	e := &EmailJS{Endpoint: srv.URL, ServiceID: "s", TemplateID: "t", PublicKey: "p"}
	err := e.Deliver(context.Background(), validMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "user ID is invalid")
}

func TestEmailJSNotConfigured(t *testing.T) {
	e := &EmailJS{}
	assert.Error(t, e.Deliver(context.Background(), validMessage()))
}

func TestSMTPDeliver(t *testing.T) {
	var addr, from string
	var to []string
	var msg []byte
	s := &SMTP{
		User: "me@example.com",
		Pass: "secret",
		To:   "inbox@example.com",

		SendMail: func(a string, _ smtp.Auth, f string, rcpt []string, m []byte) error {
			addr, from, to, msg = a, f, rcpt, m
			return nil
		},
	}

	m := validMessage()
	m.Subject = "Hi\r\nBcc: victim@example.com"
	require.NoError(t, s.Deliver(context.Background(), m))

	assert.Equal(t, "smtp.gmail.com:587", addr)
	assert.Equal(t, "me@example.com", from)
	assert.Equal(t, []string{"inbox@example.com"}, to)

	headers := strings.SplitN(string(msg), "\r\n\r\n", 2)[0]
	assert.Contains(t, headers, "Reply-To: ada@example.com")
	assert.NotContains(t, headers, "\r\nBcc:")
}

func TestSMTPNotConfigured(t *testing.T) {
	s := &SMTP{}
	assert.Error(t, s.Deliver(context.Background(), validMessage()))
}

func TestSMTPRespectsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	s := &SMTP{
		User: "u", Pass: "p",
		SendMail: func(string, smtp.Auth, string, []string, []byte) error {
			<-block
			return nil
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Deliver(ctx, validMessage())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
