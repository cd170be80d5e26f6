package send

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecipients means the recipient list was empty after normalization.
var ErrNoRecipients = errors.New("no recipients given")

// InvalidRecipientsError lists the addresses that failed validation.
type InvalidRecipientsError struct {
	Addresses []string
}

func (e *InvalidRecipientsError) Error() string {
	return fmt.Sprintf("invalid email addresses: %s", strings.Join(e.Addresses, ", "))
}
