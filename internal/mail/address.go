package mail

import "regexp"

// addressRegex matches local@domain.tld shaped addresses. This is a syntactic
// check only, it says nothing about deliverability.
var addressRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidAddress reports whether candidate looks like an email address.
func ValidAddress(candidate string) bool {
	return addressRegex.MatchString(candidate)
}
