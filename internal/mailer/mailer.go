package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"portal-webbase/config"
)

// Mailer sends plain-text notification mail over SMTP. Sending is always
// best-effort: failures are logged, never propagated, so a dead mail relay
// cannot roll back an assignment.
type Mailer struct {
	host string
	port string
	from string
	pass string
}

func New(cfg config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		from: cfg.SMTPFrom,
		pass: cfg.SMTPPass,
	}
}

func (m *Mailer) send(toEmail, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("smtp not configured")
	}
	message := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n\n%s", m.from, toEmail, subject, body)
	auth := smtp.PlainAuth("", m.from, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{toEmail}, []byte(message))
}

// SendAsync fires the mail off on its own goroutine.
func (m *Mailer) SendAsync(toEmail, subject, body string) {
	go func() {
		if err := m.send(toEmail, subject, body); err != nil {
			log.Println("mailer: send failed:", err)
		}
	}()
}

// NotifyAssignment tells a teacher about a new class assignment, including
// the join username students will use (the password is only echoed in the
// admin response, never mailed).
func (m *Mailer) NotifyAssignment(toEmail, className, subject string, sections []string, username string) {
	body := fmt.Sprintf(
		"Hello,\n\nYou have been assigned to %s for %s.\nSections: %v\nStudent join username: %s\n\n",
		className, subject, sections, username,
	)
	m.SendAsync(toEmail, "New class assignment", body)
}
