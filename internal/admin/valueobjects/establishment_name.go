package valueobjects

import (
	"regexp"

	"github.com/testnest/admin/internal/admin/guard"
)

var establishmentNamePattern = regexp.MustCompile(`(?i)^[\p{L}0-9\s&,.'-]+$`)

// EstablishmentName is the display name of an establishment.
type EstablishmentName struct {
	name string
}

// NewEstablishmentName validates name: 3 to 50 characters of letters,
// digits, whitespace and & , . ' -
func NewEstablishmentName(name string) (EstablishmentName, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(name, guard.Failed("EmptyName", "Establishment name cannot be empty.")),
		guard.AgainstLength(name, 3, 50, guard.Failed("InvalidLength", "Establishment name must be between 3 and 50 characters.")),
		guard.AgainstRegex(name, establishmentNamePattern, guard.Failed("InvalidCharacters", "Establishment name contains invalid characters.")),
	)
	if err != nil {
		return EstablishmentName{}, err
	}
	return EstablishmentName{name: name}, nil
}

func EmptyEstablishmentName() EstablishmentName { return EstablishmentName{} }

func (n EstablishmentName) Update(name string) (EstablishmentName, error) {
	return NewEstablishmentName(name)
}

func (n EstablishmentName) Name() string { return n.name }

func (n EstablishmentName) IsEmpty() bool { return n == EstablishmentName{} }

func (n EstablishmentName) String() string { return n.name }
