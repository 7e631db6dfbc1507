package jobs

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig carries outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// BaseURL is the public origin embedded in verification links.
	BaseURL string
}

// SMTPSender delivers verification messages over SMTP. It runs inside the
// worker process only; the API hands messages off through the queue.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender constructs an SMTPSender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one verification email.
func (s *SMTPSender) Send(ctx context.Context, payload VerificationEmailPayload) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{payload.To}, s.message(payload)); err != nil {
		return fmt.Errorf("jobs: send mail: %w", err)
	}
	return nil
}

func (s *SMTPSender) message(payload VerificationEmailPayload) []byte {
	link := fmt.Sprintf("%s/api/users/verify/%s", strings.TrimRight(s.cfg.BaseURL, "/"), payload.Token)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", payload.To)
	msg.WriteString("Subject: Welcome\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "To confirm your email please open the link %s\r\n", link)
	return []byte(msg.String())
}

// QueueMailer satisfies the account service's mailer port by submitting a
// delivery task. Submission failure is the caller's to log; it never blocks
// or fails the triggering request beyond the enqueue round-trip.
type QueueMailer struct {
	client *Client
}

// NewQueueMailer constructs a QueueMailer.
func NewQueueMailer(client *Client) *QueueMailer {
	return &QueueMailer{client: client}
}

// SendVerificationEmail enqueues the verification message for delivery.
func (m *QueueMailer) SendVerificationEmail(ctx context.Context, to, verificationToken string) error {
	_, err := m.client.EnqueueVerificationEmail(ctx, VerificationEmailPayload{To: to, Token: verificationToken})
	return err
}
