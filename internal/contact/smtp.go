package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTP delivers messages as plain-auth email.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// SendMail defaults to smtp.SendMail.
	SendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// Deliver sends m to s.To with the visitor's address as Reply-To.
func (s *SMTP) Deliver(ctx context.Context, m Message) error {
	if s.User == "" || s.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	host, port := s.Host, s.Port
	if host == "" {
		host = "smtp.gmail.com"
	}
	if port == "" {
		port = "587"
	}
	to := s.To
	if to == "" {
		to = s.User
	}

	send := s.SendMail
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, host)
	msg := composeMail(s.User, to, m)

	done := make(chan error, 1)
	go func() {
		done <- send(host+":"+port, auth, s.User, []string{to}, msg)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("SMTP send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func composeMail(from, to string, m Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Subject, m.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: Portfolio Contact: " + headerSafe(m.Subject) + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(m.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so visitor input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
