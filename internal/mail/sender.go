package mail

import (
	"context"

	"gopkg.in/gomail.v2"
)

// MailSender submits one assembled message to the given envelope recipients.
// The recipient list is passed explicitly, it is not parsed back out of the
// message headers.
type MailSender interface {
	Send(ctx context.Context, recipients []string, msg *gomail.Message) error
}
