package mail

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAuthentication means the relay rejected the mailbox credential.
var ErrAuthentication = errors.New("smtp authentication failed")

// RecipientsRefusedError lists the envelope recipients the relay rejected.
type RecipientsRefusedError struct {
	Recipients []string
}

func (e *RecipientsRefusedError) Error() string {
	return fmt.Sprintf("recipients refused by relay: %s", strings.Join(e.Recipients, ", "))
}
