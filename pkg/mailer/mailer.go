package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/meet-community/meet-backend/internal/config"
)

// Mailer dispatches transactional mail. Password reset is the only flow that
// sends mail, synchronously within the request.
type Mailer interface {
	SendResetCode(to, code string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (m *smtpMailer) SendResetCode(to, code string) error {
	body := fmt.Sprintf("Hi,\n\n"+
		"We received a request to reset your password. Your verification code is:\n\n"+
		"%s\n\n"+
		"Please use this code to reset your password. This code will expire in 15 minutes.\n\n"+
		"If you did not request a password reset, please ignore this email or contact support.\n\n"+
		"Thank you,\n"+
		"The Meet Team", code)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset Password Notification")
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
