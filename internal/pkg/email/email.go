package email

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService sends account emails
type EmailService interface {
	SendPasswordReset(toEmail, toName, token string) error
}

// SMTPConfig holds configuration for the SMTP server. Without credentials
// nothing is sent and the reset link is logged instead.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string // where the reset link points
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) *EmailServiceImpl {
	if config.Port == 0 {
		config.Port = 587
	}
	return &EmailServiceImpl{
		config: config,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// Configured reports whether SMTP credentials are set
func (s *EmailServiceImpl) Configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendPasswordReset emails a password reset link
func (s *EmailServiceImpl) SendPasswordReset(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.config.BaseURL, "/"), token)

	if !s.Configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured - password reset email not sent")
		return nil
	}

	body := fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello %s,</p>
		<p>We received a request to reset your portal password.</p>
		<p><a href="%s">Choose a new password</a></p>
		<p>If you did not ask for this, you can ignore this email.</p>
	</div>
</body>
</html>`, toName, resetURL)

	return s.sendHTMLEmail(toEmail, "Reset your portal password", body)
}

func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", toEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	if err := s.send(addr, auth, s.config.FromEmail, []string{toEmail}, []byte(msg.String())); err != nil {
		s.logger.Error().Err(err).Str("server", addr).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// GenerateToken returns a random hex token
func GenerateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
