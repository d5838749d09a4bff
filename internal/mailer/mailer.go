package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/karashiro/jobtrack-api/internal/config"
	"github.com/karashiro/jobtrack-api/internal/logger"
)

// Message is an outbound mail.
type Message struct {
	Recipients []string
	Subject    string
	Body       string
}

// Mailer hands messages off to an outbound transport. Send returns
// immediately; delivery happens asynchronously and is never awaited by
// callers.
type Mailer interface {
	Send(msg Message)
}

// SMTPMailer delivers messages over SMTP in a background goroutine.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	log  *logger.Logger
}

// NewSMTPMailer creates an SMTP-backed mailer from mail configuration.
func NewSMTPMailer(cfg config.Mail, log *logger.Logger) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
		auth: auth,
		log:  log,
	}
}

// Send queues the message for asynchronous delivery.
func (m *SMTPMailer) Send(msg Message) {
	go func() {
		payload := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
			m.from, strings.Join(msg.Recipients, ", "), msg.Subject, msg.Body)
		if err := smtp.SendMail(m.addr, m.auth, m.from, msg.Recipients, []byte(payload)); err != nil {
			m.log.Error("failed to send mail", "recipients", msg.Recipients, "error", err)
			return
		}
		m.log.Debug("mail sent", "recipients", msg.Recipients, "subject", msg.Subject)
	}()
}

// LogMailer logs messages instead of sending them. Used when no SMTP host
// is configured and in tests.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the message.
func (m *LogMailer) Send(msg Message) {
	m.log.Info("mail suppressed (no SMTP host configured)",
		"recipients", msg.Recipients, "subject", msg.Subject)
}
