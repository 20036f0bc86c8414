package delivery

import (
	"context"
	"path/filepath"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/fundsight/fundsight/internal/logging"
)

const defaultSMTPTimeout = 30 * time.Second

// SMTPSender delivers messages over authenticated STARTTLS SMTP.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// NewSMTPSender builds a sender for the given relay and credentials.
func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

func (s *SMTPSender) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return defaultSMTPTimeout
}

// Send composes and delivers one message. Compose and validation errors
// are terminal; transport errors come back retryable so the caller can
// offer a retry without regenerating the report.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ValidateMessage(msg); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return &DeliveryError{Op: "compose", Err: err}
	}
	if err := m.To(msg.To); err != nil {
		return &DeliveryError{Op: "compose", Err: err}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	if msg.Attachment != "" {
		name := msg.AttachmentName
		if name == "" {
			name = filepath.Base(msg.Attachment)
		}
		m.AttachFile(msg.Attachment, mail.WithFileName(name))
	}

	client, err := mail.NewClient(s.Host,
		mail.WithPort(s.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.Username),
		mail.WithPassword(s.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(s.timeout()),
	)
	if err != nil {
		return &DeliveryError{Op: "connect", Err: err}
	}

	logging.FromContext(ctx).Debug().
		Str("host", s.Host).
		Str("to", msg.To).
		Msg("sending report")

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &DeliveryError{Op: "send", Retryable: true, Err: err}
	}
	return nil
}
