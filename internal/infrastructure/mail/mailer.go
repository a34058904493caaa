// Package mail sends transactional emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/offcampus/housing-api/internal/core/domain"
)

// Config holds SMTP delivery settings. When Enabled is false the mailer logs
// the message instead of sending it, which keeps local development working
// without an SMTP server.
type Config struct {
	Enabled  bool
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPMailer implements ports.Notifier over net/smtp.
type SMTPMailer struct {
	cfg Config
	log zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// SendAccountConfirmation emails the new account holder their registration
// details. The password is included in plaintext, mirroring the confirmation
// message the account holder just chose it from.
func (m *SMTPMailer) SendAccountConfirmation(_ context.Context, user *domain.User, password string) error {
	subject := "Welcome to OffCampus Housing"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour %s account has been created.\r\n\r\nEmail: %s\r\nPassword: %s\r\n\r\nHappy house hunting!\r\n",
		user.FirstName, user.Type, user.Email, password,
	)
	return m.send(user.Email, subject, body)
}

// SendInterestNotification emails the listing broker that a student wants to
// hear about a listing.
func (m *SMTPMailer) SendInterestNotification(_ context.Context, brokerEmail, studentEmail string, property *domain.Property) error {
	subject := fmt.Sprintf("Interest in your listing: %s", property.Name)
	body := fmt.Sprintf(
		"A student (%s) is interested in your listing %q at %s, %s.\r\n\r\nReach out to them directly to follow up.\r\n",
		studentEmail, property.Name, property.Address, property.City,
	)
	return m.send(brokerEmail, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if !m.cfg.Enabled {
		m.log.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("mail disabled, skipping delivery")
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
