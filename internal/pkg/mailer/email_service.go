package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCredentials(toEmail, fullName, tempPassword string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendCredentials mails the initial password to a newly provisioned user.
// Delivery is best effort; the caller decides whether a failure matters.
func (s *emailService) SendCredentials(toEmail, fullName, tempPassword string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your DocVault Account")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to DocVault, %s</h2>
			<p>An account has been created for you. Your temporary password is:</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
			<p>Please sign in and change it as soon as possible.</p>
		</div>
	`, fullName, tempPassword)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send credentials to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Credentials sent to %s\n", toEmail)
	return nil
}
