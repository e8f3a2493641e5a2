package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends partner notifications over SMTP
type SMTPMailer struct {
	from   string
	sender gomail.Sender
	logger *zap.Logger
}

// NewSMTPMailer dials the configured SMTP server for every message
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return newSMTPMailer(cfg.SenderEmail, gomail.SendFunc(func(from string, to []string, msg io.WriterTo) error {
		closer, err := dialer.Dial()
		if err != nil {
			return err
		}
		defer closer.Close()
		return closer.Send(from, to, msg)
	}), logger)
}

func newSMTPMailer(from string, sender gomail.Sender, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender, logger: logger}
}

// Send delivers a plain-text message. ctx bounds the wait, not the SMTP exchange itself.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.message(to, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- gomail.Send(m.sender, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			m.logger.Error("Failed to send email",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
			return fmt.Errorf("send email: %w", err)
		}
		m.logger.Info("Email sent",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *SMTPMailer) message(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return msg
}
