package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/quickplate/quickplate/internal/auth/domain"
)

// SMTPNotifier sends OTP emails over SMTP, with optional implicit TLS.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

func NewSMTPNotifier(host string, port int, username, password, from, fromName string, useTLS bool) (*SMTPNotifier, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("notify: smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("notify: smtp from is required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		FromName: fromName,
		UseTLS:   useTLS,
	}, nil
}

func (s *SMTPNotifier) SendOTP(_ context.Context, c domain.OTPChallenge) error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("notify: recipient email is required")
	}

	subject := "Your verification code"
	if c.Purpose == domain.OTPPurposePasswordReset {
		subject = "Your password reset code"
	}
	body := fmt.Sprintf(
		"Your code is %s.\nIt expires at %s UTC.\n",
		c.Code,
		c.ExpiresAt.UTC().Format(time.RFC3339),
	)
	msg := buildMessage(s.From, s.FromName, c.Email, subject, body)
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	if s.UseTLS {
		return s.sendTLS(addr, auth, c.Email, msg)
	}
	return smtp.SendMail(addr, auth, s.From, []string{c.Email}, []byte(msg))
}

func (s *SMTPNotifier) sendTLS(addr string, auth smtp.Auth, to, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(s.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
