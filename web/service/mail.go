package service

import (
	"bytes"
	"text/template"

	"github.com/jvlcode/goblog/config"

	"gopkg.in/gomail.v2"
)

// MailSender is the fixed from-address for every outbound message.
const MailSender = "noreply@jvlcode.com"

const resetPasswordSubject = "Reset Password Requested"

// resetPasswordTemplate is the body of the password reset email.
var resetPasswordTemplate = template.Must(template.New("reset_password_email").Parse(
	`Hello,

You requested a password reset. Use the link below to choose a new password:

http://{{.Domain}}/reset-password/{{.UID}}/{{.Token}}

If you did not request this, you can ignore this email.
`))

type resetPasswordData struct {
	Domain string
	UID    string
	Token  string
}

// MailService dispatches mail through the configured SMTP relay.
type MailService struct {
	// dial is swappable for tests.
	dial func(m *gomail.Message) error
}

// SendPasswordReset renders the reset email for the given site domain and
// token pair and dispatches it to the user's registered address.
func (s *MailService) SendPasswordReset(to string, domain string, uid string, token string) error {
	var body bytes.Buffer
	err := resetPasswordTemplate.Execute(&body, resetPasswordData{
		Domain: domain,
		UID:    uid,
		Token:  token,
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", MailSender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", resetPasswordSubject)
	m.SetBody("text/plain", body.String())

	if s.dial != nil {
		return s.dial(m)
	}
	d := gomail.NewDialer(
		config.GetSMTPHost(),
		config.GetSMTPPort(),
		config.GetSMTPUsername(),
		config.GetSMTPPassword(),
	)
	return d.DialAndSend(m)
}
