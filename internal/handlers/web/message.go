package web

import "fmt"

const (
	MsgInvalidRequest       = "Invalid request. Please try again."
	MsgNoRecipients         = "Please enter at least one recipient."
	MsgInvalidRecipients    = "Invalid email addresses: %s"
	MsgAuthenticationFailed = "Authentication failed. Check your Gmail email and app password in .env."
	MsgRecipientsRefused    = "One or more recipient emails are invalid."
	MsgSendFailed           = "Failed to send email: %s"
	MsgEmailSent            = "Email sent successfully."
	MsgDefaultsSaved        = "Default content saved."
	MsgDefaultsLoadFailed   = "Could not load saved defaults: %s"
	MsgDefaultsSaveFailed   = "Could not save defaults: %s"
)

func formatFileSize(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}
