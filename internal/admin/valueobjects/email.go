// Package valueobjects holds the immutable, self-validating values that make
// up the admin domain. Constructors report every violated rule at once as a
// Validation failure; the zero value of each type is its Empty sentinel.
package valueobjects

import (
	"regexp"
	"strings"

	"github.com/testnest/admin/internal/admin/guard"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	domainPattern = regexp.MustCompile(`(?i)^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z0-9][a-z0-9-]{0,61}[a-z0-9]$`)
)

var errInvalidEmail = guard.Failed("InvalidEmailFormat", "Email address format is invalid.")

// EmailAddress is a syntactically valid email address.
type EmailAddress struct {
	email string
}

// NewEmailAddress validates email.
func NewEmailAddress(email string) (EmailAddress, error) {
	if err := validateEmail(email); err != nil {
		return EmailAddress{}, err
	}
	return EmailAddress{email: email}, nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" || strings.Count(email, "@") != 1 || !emailPattern.MatchString(email) {
		return guard.AgainstCondition(true, errInvalidEmail)
	}
	domain := email[strings.Index(email, "@")+1:]
	return guard.AgainstRegex(domain, domainPattern, errInvalidEmail)
}

// EmptyEmailAddress returns the "no value" email.
func EmptyEmailAddress() EmailAddress { return EmailAddress{} }

// Update validates and returns a new address.
func (a EmailAddress) Update(email string) (EmailAddress, error) {
	return NewEmailAddress(email)
}

// Email returns the raw address.
func (a EmailAddress) Email() string { return a.email }

func (a EmailAddress) IsEmpty() bool { return a == EmailAddress{} }

func (a EmailAddress) String() string { return a.email }
