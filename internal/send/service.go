package send

import (
	"context"
	"strings"

	"github.com/quangdm/stmail/internal/attach"
	"github.com/quangdm/stmail/internal/mail"
)

// Input is one send action as collected from the form. DefaultFiles are the
// session-held default attachments, ExtraFiles the per-send uploads.
type Input struct {
	RecipientsRaw string
	Subject       string
	Body          string
	DefaultFiles  []attach.UploadedFile
	ExtraFiles    []attach.UploadedFile
}

// Result reports what a completed or attempted send actually did.
type Result struct {
	Recipients []string
	Warnings   []string
}

// Service runs one send end to end: validate recipients, stage attachments,
// assemble the message and submit it. Staged files are removed on every exit
// path past staging.
type Service struct {
	sender string
	stager *attach.Stager
	relay  mail.MailSender
}

func NewService(sender string, stager *attach.Stager, relay mail.MailSender) *Service {
	return &Service{
		sender: sender,
		stager: stager,
		relay:  relay,
	}
}

// Execute performs one send. Validation failures abort before anything is
// staged. The Result is non-nil whenever staging ran, so callers can surface
// warnings even when the send itself failed.
func (s *Service) Execute(ctx context.Context, input Input) (*Result, error) {
	recipients := splitRecipients(input.RecipientsRaw)
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	var invalid []string
	for _, rcpt := range recipients {
		if !mail.ValidAddress(rcpt) {
			invalid = append(invalid, rcpt)
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidRecipientsError{Addresses: invalid}
	}

	// defaults first, then the per-send extras
	uploads := make([]attach.UploadedFile, 0, len(input.DefaultFiles)+len(input.ExtraFiles))
	uploads = append(uploads, input.DefaultFiles...)
	uploads = append(uploads, input.ExtraFiles...)

	staged, warnings := s.stager.Stage(uploads)
	defer attach.Cleanup(staged)

	result := &Result{Recipients: recipients, Warnings: warnings}
	msg := mail.BuildMessage(s.sender, recipients, input.Subject, input.Body, staged)
	if err := s.relay.Send(ctx, recipients, msg); err != nil {
		return result, err
	}
	return result, nil
}

// splitRecipients splits the raw comma separated list, trimming whitespace
// and dropping empty entries.
func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
