package mail

import (
	"context"
	"strings"

	"advisor-backend/internal/shared/telemetry"
)

// Mailer delivers password reset mails.
type Mailer interface {
	SendResetMail(ctx context.Context, email, token string) error
}

// LogMailer writes the mail to the telemetry stream instead of sending
// it. Stands in for an SES/SMTP mailer in development and tests.
type LogMailer struct {
	ResetURLBase string
}

// NewLogMailer constructs a LogMailer. resetURLBase is the UI page the
// token link points at, e.g. https://app.example.com/reset-password.
func NewLogMailer(resetURLBase string) *LogMailer {
	return &LogMailer{ResetURLBase: resetURLBase}
}

func (m *LogMailer) SendResetMail(ctx context.Context, email, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	link := token
	if base := strings.TrimSpace(m.ResetURLBase); base != "" {
		link = base + "?token=" + token
	}
	telemetry.Info("mail.reset.delivered", map[string]any{
		"email": email,
		"link":  link,
	})
	return nil
}

var _ Mailer = (*LogMailer)(nil)
