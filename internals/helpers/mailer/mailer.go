// internals/helpers/mailer/mailer.go
package mailer

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"booknetwork_backend/internals/configs"
)

// Template names mirror the original mailing templates.
const (
	TemplateActivateAccount = "activate_account"
	TemplateForgotPassword  = "forgot_password"
)

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewFromEnv() *Mailer {
	return &Mailer{
		host:     configs.SMTPHost,
		port:     configs.SMTPPort,
		username: configs.SMTPUsername,
		password: configs.SMTPPassword,
		from:     configs.MailFrom,
	}
}

// Send delivers an activation or reset code. Without SMTP configuration the
// code is logged instead so local development works without a mail server.
func (m *Mailer) Send(to, fullName, template, confirmationURL, code, subject string) error {
	body := renderBody(fullName, template, confirmationURL, code)

	if m.host == "" {
		log.Printf("[WARN] SMTP not configured, mail to %s skipped (code=%s)", to, code)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func renderBody(fullName, template, confirmationURL, code string) string {
	switch template {
	case TemplateForgotPassword:
		return fmt.Sprintf(
			`<p>Hello %s,</p><p>Use this code to reset your password: <b>%s</b></p><p><a href="%s?token=%s">Reset password</a></p>`,
			fullName, code, confirmationURL, code,
		)
	default:
		return fmt.Sprintf(
			`<p>Hello %s,</p><p>Your activation code is <b>%s</b></p><p><a href="%s?token=%s">Activate account</a></p>`,
			fullName, code, confirmationURL, code,
		)
	}
}
