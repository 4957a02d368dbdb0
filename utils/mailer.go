package utils

import (
	"fmt"

	"ems/config"
	"ems/models"

	"gopkg.in/gomail.v2"
)

// MailNotification sends a copy of an in-app notification to the recipient's
// email address. Returns nil without sending when SMTP is not configured.
func MailNotification(to string, n *models.Notification) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || to == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("[EMS] %s notification", n.Type))
	m.SetBody("text/plain", n.Message)

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return d.DialAndSend(m)
}
