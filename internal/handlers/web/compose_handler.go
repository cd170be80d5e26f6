package web

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/quangdm/stmail/internal/mail"
	"github.com/quangdm/stmail/internal/middlewares/csrf"
	"github.com/quangdm/stmail/internal/middlewares/sessions"
	"github.com/quangdm/stmail/internal/send"
	"github.com/quangdm/stmail/model"
)

// ComposeHandler serves the single compose page with its two forms: save
// default content and send email.
type ComposeHandler struct {
	owner         string
	defaultsStore DefaultsStore
	sendService   SendService
}

// composeState carries the values the compose page renders with. Recipients,
// subject and body echo whatever the operator last submitted.
type composeState struct {
	Recipients string
	Subject    string
	Body       string
	SavedFiles []model.FileMetadata
	InfoMsg    string
	ErrorMsg   string
	Warnings   []string
}

func (h *ComposeHandler) renderCompose(ctx *fiber.Ctx, state composeState) error {
	files := make([]fiber.Map, 0, len(state.SavedFiles))
	for _, file := range state.SavedFiles {
		files = append(files, fiber.Map{
			"name": file.Name,
			"size": formatFileSize(file.Size),
		})
	}
	return ctx.Render("compose", fiber.Map{
		"siteName":   ctx.Locals("siteName"),
		"ownerEmail": h.owner,
		"recipients": state.Recipients,
		"subject":    state.Subject,
		"body":       state.Body,
		"savedFiles": files,
		"infoMsg":    state.InfoMsg,
		"errorMsg":   state.ErrorMsg,
		"warnings":   state.Warnings,
		"csrfToken":  csrf.Token(ctx),
	})
}

// savedFiles fetches the stored attachment metadata for display, best effort.
func (h *ComposeHandler) savedFiles(ctx *fiber.Ctx) []model.FileMetadata {
	record, err := h.defaultsStore.Load(ctx.Context(), h.owner)
	if err != nil {
		return nil
	}
	return record.Files
}

// GetCompose renders the page prefilled with the stored defaults.
func (h *ComposeHandler) GetCompose(ctx *fiber.Ctx) error {
	record, err := h.defaultsStore.Load(ctx.Context(), h.owner)
	if err != nil {
		return h.renderCompose(ctx, composeState{
			ErrorMsg: fmt.Sprintf(MsgDefaultsLoadFailed, err),
		})
	}
	return h.renderCompose(ctx, composeState{
		Subject:    record.Subject,
		Body:       record.Body,
		SavedFiles: record.Files,
	})
}

// PostDefaults replaces the stored defaults wholesale. Uploaded content is
// kept in the session so the current session can still send it; the store
// only keeps name and size.
func (h *ComposeHandler) PostDefaults(ctx *fiber.Ctx) error {
	if !csrf.Verify(ctx) {
		return fiber.ErrBadRequest
	}

	subject := ctx.FormValue("subject")
	body := ctx.FormValue("body")
	uploads, err := formUploads(ctx, "attachments")
	if err != nil {
		return h.renderCompose(ctx, composeState{
			Subject:    subject,
			Body:       body,
			SavedFiles: h.savedFiles(ctx),
			ErrorMsg:   MsgInvalidRequest,
		})
	}

	meta := make([]model.FileMetadata, 0, len(uploads))
	for _, file := range uploads {
		meta = append(meta, model.FileMetadata{Name: file.Name, Size: file.Size})
	}

	if err := h.defaultsStore.Save(ctx.Context(), h.owner, subject, body, meta); err != nil {
		return h.renderCompose(ctx, composeState{
			Subject:    subject,
			Body:       body,
			SavedFiles: h.savedFiles(ctx),
			ErrorMsg:   fmt.Sprintf(MsgDefaultsSaveFailed, err),
		})
	}

	session := sessions.Get(ctx)
	data := session.SessionData
	data.DefaultFiles = uploads
	session.Save(data)

	return h.renderCompose(ctx, composeState{
		Subject:    subject,
		Body:       body,
		SavedFiles: meta,
		InfoMsg:    MsgDefaultsSaved,
	})
}

// PostSend runs one send with the submitted overrides plus the session-held
// default attachments.
func (h *ComposeHandler) PostSend(ctx *fiber.Ctx) error {
	if !csrf.Verify(ctx) {
		return fiber.ErrBadRequest
	}

	recipients := ctx.FormValue("recipients")
	subject := ctx.FormValue("subject")
	body := ctx.FormValue("body")

	state := composeState{
		Recipients: recipients,
		Subject:    subject,
		Body:       body,
		SavedFiles: h.savedFiles(ctx),
	}

	extra, err := formUploads(ctx, "extraAttachments")
	if err != nil {
		state.ErrorMsg = MsgInvalidRequest
		return h.renderCompose(ctx, state)
	}

	session := sessions.Get(ctx)
	result, err := h.sendService.Execute(ctx.Context(), send.Input{
		RecipientsRaw: recipients,
		Subject:       subject,
		Body:          body,
		DefaultFiles:  session.DefaultFiles,
		ExtraFiles:    extra,
	})
	if result != nil {
		state.Warnings = result.Warnings
	}
	if err != nil {
		state.ErrorMsg = sendErrorMessage(err)
		return h.renderCompose(ctx, state)
	}

	state.InfoMsg = MsgEmailSent
	return h.renderCompose(ctx, state)
}

// sendErrorMessage maps a send failure to its user-facing message.
func sendErrorMessage(err error) string {
	var invalid *send.InvalidRecipientsError
	var refused *mail.RecipientsRefusedError
	switch {
	case errors.Is(err, send.ErrNoRecipients):
		return MsgNoRecipients
	case errors.As(err, &invalid):
		return fmt.Sprintf(MsgInvalidRecipients, strings.Join(invalid.Addresses, ", "))
	case errors.Is(err, mail.ErrAuthentication):
		return MsgAuthenticationFailed
	case errors.As(err, &refused):
		return MsgRecipientsRefused
	default:
		return fmt.Sprintf(MsgSendFailed, err)
	}
}

func NewComposeHandler(owner string, defaultsStore DefaultsStore, sendService SendService) *ComposeHandler {
	return &ComposeHandler{
		owner:         owner,
		defaultsStore: defaultsStore,
		sendService:   sendService,
	}
}
