package mail

import (
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/lahah11/finale-anesp-sub001/pkg/config"
)

// Mailer delivers rendered mission orders over SMTP.
type Mailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

// NewMailer constructs a mailer from configuration. A disabled mailer is a
// valid value; Send becomes a no-op so the document worker stays wired in
// environments without SMTP.
func NewMailer(cfg config.MailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// SendMissionOrder emails the PDF to the given recipients.
func (m *Mailer) SendMissionOrder(to []string, reference string, pdf []byte) error {
	if m.dialer == nil || len(to) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", fmt.Sprintf("Mission order %s validated", reference))
	msg.SetBody("text/plain", fmt.Sprintf("Mission order %s has been validated. The signed document is attached.", reference))
	msg.Attach(
		fmt.Sprintf("%s.pdf", reference),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mission order %s: %w", reference, err)
	}
	return nil
}
