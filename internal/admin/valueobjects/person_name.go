package valueobjects

import (
	"regexp"
	"strings"

	"github.com/testnest/admin/internal/admin/guard"
)

var personNamePattern = regexp.MustCompile(`^[\p{L}\s.'-]+$`)

// PersonName is a first, optional middle and last name.
type PersonName struct {
	firstName  string
	middleName string
	lastName   string
}

// NewPersonName validates the three parts. First and last names are
// required; the middle name may be blank.
func NewPersonName(firstName, middleName, lastName string) (PersonName, error) {
	checks := []error{
		guard.AgainstNullOrWhiteSpace(firstName, guard.Failed("EmptyFirstName", "First name cannot be empty.")),
		guard.AgainstLength(firstName, 1, 100, guard.Failed("InvalidFirstNameLength", "First name must not exceed 100 characters.")),
		guard.AgainstRegex(firstName, personNamePattern, guard.Failed("InvalidFirstNameCharacters", "First name contains invalid characters.")),
		guard.AgainstNullOrWhiteSpace(lastName, guard.Failed("EmptyLastName", "Last name cannot be empty.")),
		guard.AgainstLength(lastName, 1, 100, guard.Failed("InvalidLastNameLength", "Last name must not exceed 100 characters.")),
		guard.AgainstRegex(lastName, personNamePattern, guard.Failed("InvalidLastNameCharacters", "Last name contains invalid characters.")),
	}
	if strings.TrimSpace(middleName) != "" {
		checks = append(checks,
			guard.AgainstLength(middleName, 1, 100, guard.Failed("InvalidMiddleNameLength", "Middle name must not exceed 100 characters.")),
			guard.AgainstRegex(middleName, personNamePattern, guard.Failed("InvalidMiddleNameCharacters", "Middle name contains invalid characters.")),
		)
	}
	if err := guard.Aggregate(checks...); err != nil {
		return PersonName{}, err
	}
	return PersonName{
		firstName:  strings.TrimSpace(firstName),
		middleName: strings.TrimSpace(middleName),
		lastName:   strings.TrimSpace(lastName),
	}, nil
}

func EmptyPersonName() PersonName { return PersonName{} }

func (p PersonName) Update(firstName, middleName, lastName string) (PersonName, error) {
	return NewPersonName(firstName, middleName, lastName)
}

func (p PersonName) FirstName() string { return p.firstName }
func (p PersonName) MiddleName() string { return p.middleName }
func (p PersonName) LastName() string { return p.lastName }
func (p PersonName) IsEmpty() bool { return p == PersonName{} }

// FullName joins the non-blank parts with single spaces.
func (p PersonName) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.firstName, p.middleName, p.lastName} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

func (p PersonName) String() string { return p.FullName() }
