// Package mailer delivers access codes over SMTP.
package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
)

const accessCodeSubject = "Your RankScore Pro Access Code"

const accessCodeBody = `Thank you for purchasing RankScore Pro!

Your unique access code: %s

Enter this code in the RankScore Pro app to unlock full features.

If you have issues, contact support@rankscore.ai.
`

// Mailer sends transactional mail. A nil Mailer means mail delivery is not
// configured; callers skip it.
type Mailer struct {
	cfg config.MailConfig
}

// New returns a Mailer, or nil when sender credentials are missing.
func New(cfg config.MailConfig) *Mailer {
	if cfg.Sender == "" || cfg.Password == "" {
		return nil
	}
	return &Mailer{cfg: cfg}
}

// SendAccessCode mails the code to the buyer over implicit-SSL SMTP.
func (m *Mailer) SendAccessCode(ctx context.Context, to, code string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return fmt.Errorf("mailer: set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mailer: set recipient: %w", err)
	}
	msg.Subject(accessCodeSubject)
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(accessCodeBody, code))

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Sender),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return models.NewScanError(models.ErrCodeMail, "could not build SMTP client", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return models.NewScanError(models.ErrCodeMail, fmt.Sprintf("could not deliver access code to %s", to), err)
	}
	return nil
}
