package mail

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/quangdm/stmail/internal/attach"
	"github.com/quangdm/stmail/params"
	"gopkg.in/gomail.v2"
)

// BuildMessage assembles a plain-text message with the staged attachments.
// An empty subject falls back to the placeholder. Attachments whose staged
// file no longer exists are skipped; staging and building are not atomic with
// respect to external deletion. Attached files keep the original upload name,
// not the temp file basename.
func BuildMessage(sender string, recipients []string, subject, body string, attachments []attach.StagedAttachment) *gomail.Message {
	if subject == "" {
		subject = params.PlaceholderSubject
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", sender)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), params.SMTPHost))
	msg.SetBody("text/plain", body)

	for _, att := range attachments {
		if _, err := os.Stat(att.Path); err != nil {
			continue
		}
		msg.Attach(att.Path, gomail.Rename(att.Name))
	}
	return msg
}
