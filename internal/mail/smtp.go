package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"

	"github.com/quangdm/stmail/params"
	"gopkg.in/gomail.v2"
)

// SMTPMailSender submits messages to a fixed relay over implicit TLS.
type SMTPMailSender struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPMailSender(host string, port int, username, password string) *SMTPMailSender {
	return &SMTPMailSender{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

// Send makes exactly one submission attempt, there is no retry. Errors are
// classified: a rejected credential wraps ErrAuthentication, rejected envelope
// recipients come back as *RecipientsRefusedError, anything else carries the
// underlying failure text.
func (s *SMTPMailSender) Send(ctx context.Context, recipients []string, msg *gomail.Message) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	dialer := &net.Dialer{Timeout: params.SMTPDialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: s.Host})
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", addr, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	if err := client.Auth(auth); err != nil {
		if isRejection(err) {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.Username); err != nil {
		return fmt.Errorf("sender rejected: %w", err)
	}

	// Collect every refused recipient before giving up so the operator sees
	// the full list. DATA is never entered when any recipient was refused,
	// nothing gets partially delivered.
	var refused []string
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			if isRejection(err) {
				refused = append(refused, rcpt)
				continue
			}
			return fmt.Errorf("recipient %s: %w", rcpt, err)
		}
	}
	if len(refused) > 0 {
		return &RecipientsRefusedError{Recipients: refused}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data command rejected: %w", err)
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("could not write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message not accepted: %w", err)
	}
	return client.Quit()
}

// isRejection reports whether err is a negative SMTP reply rather than a
// network or protocol failure.
func isRejection(err error) bool {
	var protoErr *textproto.Error
	return errors.As(err, &protoErr)
}
