// Package mailer sends templated transactional email over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// EmailError is the generic error surfaced by email failures. It carries
// only a message.
type EmailError struct {
	Message string
}

func (e *EmailError) Error() string { return e.Message }

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string

	// send is swappable in tests; defaults to an SMTP dial-and-send.
	send func(*gomail.Message) error
}

func NewMailerFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	m := &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USERNAME"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
	if m.from == "" {
		m.from = "no-reply@wattwise.example.com"
	}
	m.send = func(msg *gomail.Message) error {
		dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
		return dialer.DialAndSend(msg)
	}
	return m
}

func (m *Mailer) sendTemplated(to, subject, templateName string, data interface{}) error {
	var textBody, htmlBody bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&textBody, templateName+".txt", data); err != nil {
		log.Printf("Error executing text template %s: %v", templateName, err)
		return &EmailError{Message: "failed to render email body"}
	}
	if err := htmlTemplates.ExecuteTemplate(&htmlBody, templateName+".html", data); err != nil {
		log.Printf("Error executing HTML template %s: %v", templateName, err)
		return &EmailError{Message: "failed to render email body"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	if err := m.send(msg); err != nil {
		log.Printf("Error sending '%s' email to %s: %v", templateName, to, err)
		return &EmailError{Message: "failed to send email"}
	}

	log.Printf("Email sent: template=%s to=%s", templateName, to)
	return nil
}

// SendWelcome greets a newly registered user.
func (m *Mailer) SendWelcome(to string) error {
	return m.sendTemplated(to, "Welcome to WattWise", "welcome", map[string]string{
		"Email": to,
	})
}

// SendReportReady notifies a user that their audit report can be
// downloaded.
func (m *Mailer) SendReportReady(to, auditID string, estimatedSavings float64) error {
	return m.sendTemplated(to, "Your energy audit report is ready", "report_ready", map[string]interface{}{
		"AuditID":          auditID,
		"EstimatedSavings": fmt.Sprintf("%.0f", estimatedSavings),
	})
}
