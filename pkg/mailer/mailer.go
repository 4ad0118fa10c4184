package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/fortlifegroup/sst-backend/pkg/config"
)

// ErrNotConfigured signals that the SMTP credentials are incomplete. Callers
// treat this differently from a delivery failure.
var ErrNotConfigured = errors.New("smtp is not configured")

// Mailer sends transactional email over SMTP with PLAIN auth.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single HTML message to one recipient.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.FromEmail,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// SendPasswordReset emails the reset link for the given raw token. The
// stated expiry follows the configured token TTL.
func (m *Mailer) SendPasswordReset(to, resetURL string, ttl time.Duration) error {
	body := fmt.Sprintf(
		`<p>We received a request to reset your password.</p>`+
			`<p><a href="%s">Reset your password</a></p>`+
			`<p>The link expires in %d minutes. If you did not request this, you can ignore this email.</p>`,
		resetURL, int(ttl.Minutes()),
	)
	return m.Send(to, "Reset your password", body)
}
