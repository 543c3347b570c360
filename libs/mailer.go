package libs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer() (*Mailer, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	return &Mailer{
		dialer: gomail.NewDialer(smtpHost, port, smtpUser, smtpPass),
		from:   os.Getenv("SMTP_FROM"),
	}, nil
}

func (m *Mailer) SendWelcomeEmail(toEmail, fullName string) error {
	name := fullName
	if name == "" {
		name = "there"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Welcome to OrganicRoots")
	msg.SetBody("text/html", fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2 style="color: #16a34a;">Welcome to OrganicRoots</h2>
	<p>Hi %s,</p>
	<p>Your account has been created. Browse this week's specials, build your
	saved list, and keep an eye out for flash sales.</p>
	<p style="color: #666; font-size: 12px;">This is an automated email. Please do not reply.</p>
</div>`, name))

	return m.dialer.DialAndSend(msg)
}

// SendWelcomeAsync fires the welcome mail without blocking registration;
// failures are logged and otherwise ignored.
func SendWelcomeAsync(toEmail, fullName string) {
	mailer, err := NewMailer()
	if err != nil {
		return
	}
	go func() {
		if err := mailer.SendWelcomeEmail(toEmail, fullName); err != nil {
			log.Printf("welcome email to %s failed: %v", toEmail, err)
		}
	}()
}
