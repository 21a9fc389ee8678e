package notify

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"
)

// Mailer sends HTML email over SMTP with implicit TLS (port 465).
type Mailer struct {
	Host     string
	Port     int
	From     string
	Password string
}

func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}

	port := 465
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	return &Mailer{
		Host:     host,
		Port:     port,
		From:     os.Getenv("SENDER_EMAIL"),
		Password: os.Getenv("SENDER_PASSWORD"),
	}
}

func (m *Mailer) Send(to, subject, htmlBody string) bool {
	if m.From == "" || m.Password == "" {
		log.Printf("Skipping email to %s: sender credentials are not set", to)
		return false
	}

	if err := m.send(to, subject, htmlBody); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return false
	}

	log.Printf("Email sent successfully to %s", to)
	return true
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.Host})

	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.Host)

	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(smtp.PlainAuth("", m.From, m.Password, m.Host)); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}

	if err := client.Mail(m.From); err != nil {
		return err
	}

	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()

	if err != nil {
		return err
	}

	msg := fmt.Sprintf("From: SURA Connect <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n%s\r\n", m.From, to, subject, htmlBody)

	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
