package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/sachin24864/RealEstate-Website/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrIncompleteConfig = errors.New("SMTP configuration is incomplete")

type Sender interface {
	Send(ctx context.Context, to []string, subject, bodyText string) error
}

type smtpSender struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewSMTPSender(cfg *config.SMTPConfig, logger *zap.Logger) Sender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if cfg.Port == 465 {
		dialer.SSL = true
	}
	return &smtpSender{
		cfg:    cfg,
		dialer: dialer,
		logger: logger.Named("SMTPSender"),
	}
}

func (s *smtpSender) Send(ctx context.Context, to []string, subject, bodyText string) error {
	if s.cfg.Host == "" || s.cfg.Username == "" || s.cfg.Password == "" || s.cfg.SenderEmail == "" {
		s.logger.Error("SMTP configuration is incomplete. Email not sent.",
			zap.String("host", s.cfg.Host),
			zap.String("username", s.cfg.Username),
			zap.Bool("password_set", s.cfg.Password != ""),
			zap.String("sender", s.cfg.SenderEmail))
		return ErrIncompleteConfig
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients provided for email")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", bodyText)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("Email sending cancelled or timed out", zap.Strings("to", to), zap.String("subject", subject), zap.Error(ctx.Err()))
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.logger.Error("Failed to send email", zap.Error(err), zap.Strings("to", to), zap.String("subject", subject))
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	s.logger.Info("Email sent successfully", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}
