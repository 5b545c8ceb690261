package valueobjects

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/testnest/admin/internal/admin/guard"
)

var phoneNumberPattern = regexp.MustCompile(`^\+?[0-9][0-9\s()-]{5,18}[0-9]$`)

// PhoneNumber is a dialable number with 7 to 15 digits. Spaces, dashes
// and parentheses are kept as entered.
type PhoneNumber struct {
	phoneNo string
}

func NewPhoneNumber(phoneNo string) (PhoneNumber, error) {
	digits := 0
	for _, r := range phoneNo {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(phoneNo, guard.Failed("EmptyPhoneNumber", "Phone number cannot be empty.")),
		guard.AgainstRegex(phoneNo, phoneNumberPattern, guard.Failed("InvalidPhoneNumberFormat", "Phone number format is invalid.")),
		guard.AgainstRange(digits, 7, 15, guard.Failed("InvalidPhoneNumberLength", "Phone number must contain between 7 and 15 digits.")),
	)
	if err != nil {
		return PhoneNumber{}, err
	}
	return PhoneNumber{phoneNo: strings.TrimSpace(phoneNo)}, nil
}

func EmptyPhoneNumber() PhoneNumber { return PhoneNumber{} }

func (p PhoneNumber) Update(phoneNo string) (PhoneNumber, error) {
	return NewPhoneNumber(phoneNo)
}

func (p PhoneNumber) PhoneNo() string { return p.phoneNo }
func (p PhoneNumber) IsEmpty() bool { return p == PhoneNumber{} }
func (p PhoneNumber) String() string { return p.phoneNo }
