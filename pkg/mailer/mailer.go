package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/pkg/circuit"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"go.uber.org/zap"
)

// Mailer delivers a single html message.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// New picks the SMTP mailer when a host is configured and the log mailer
// otherwise. Both are wrapped in the "mailer" circuit breaker.
func New(cfg config.MailConfig, breaker *circuit.Breaker) Mailer {
	var m Mailer
	if cfg.Host == "" {
		m = NewLogMailer(logger.GetLogger())
	} else {
		m = NewSMTPMailer(cfg)
	}
	if breaker == nil {
		return m
	}
	return &guarded{next: m, breaker: breaker}
}

type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: cfg.Host + ":" + strconv.Itoa(cfg.Port),
		from: cfg.From,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, html string) error {
	msg := buildMessage(m.from, to, subject, html, time.Now())

	done := make(chan error, 1)
	go func() {
		done <- m.send(m.addr, m.auth, envelopeAddress(m.from), []string{to}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", to, err)
		}
		return nil
	}
}

func buildMessage(from, to, subject, html string, now time.Time) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	return []byte(b.String())
}

// envelopeAddress strips a display name: "Shop <a@b.c>" becomes "a@b.c".
func envelopeAddress(from string) string {
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.LastIndex(from, ">"); j > i {
			return from[i+1 : j]
		}
	}
	return strings.TrimSpace(from)
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject, html string) error {
	m.log.Info("Mail not delivered, SMTP disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_size", len(html)),
	)
	return nil
}

type guarded struct {
	next    Mailer
	breaker *circuit.Breaker
}

func (g *guarded) Send(ctx context.Context, to, subject, html string) error {
	return g.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return g.next.Send(ctx, to, subject, html)
	})
}
