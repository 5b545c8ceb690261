// Package ids provides strongly-typed entity identifiers. Every entity gets
// its own instantiation of ID so identifiers of different entities cannot be
// mixed up at compile time.
package ids

import (
	"strings"

	"github.com/google/uuid"

	e "github.com/testnest/admin/internal/admin/errors"
)

// ID wraps a UUID for the entity kind K.
type ID[K any] struct {
	value uuid.UUID
}

// Entity kinds used as the type parameter of ID.
type (
	Employee             struct{}
	Establishment        struct{}
	EstablishmentAddress struct{}
	EstablishmentContact struct{}
	EstablishmentPhone   struct{}
	EstablishmentMember  struct{}
	EmployeeRole         struct{}
	SocialMedia          struct{}
)

type (
	EmployeeID             = ID[Employee]
	EstablishmentID        = ID[Establishment]
	EstablishmentAddressID = ID[EstablishmentAddress]
	EstablishmentContactID = ID[EstablishmentContact]
	EstablishmentPhoneID   = ID[EstablishmentPhone]
	EstablishmentMemberID  = ID[EstablishmentMember]
	EmployeeRoleID         = ID[EmployeeRole]
	SocialMediaID          = ID[SocialMedia]
)

// New returns a fresh random identifier.
func New[K any]() ID[K] {
	return ID[K]{value: uuid.New()}
}

// Empty returns the "no value" identifier.
func Empty[K any]() ID[K] {
	return ID[K]{}
}

// FromUUID wraps an existing UUID without validation.
func FromUUID[K any](u uuid.UUID) ID[K] {
	return ID[K]{value: u}
}

// Parse validates s and returns the identifier it holds. Malformed input
// fails with InvalidGuidFormat, the zero GUID with NullId.
func Parse[K any](s string) (ID[K], error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ID[K]{}, e.Validationf("InvalidGuidFormat", "Invalid GUID format: '%s'.", s)
	}
	if u == uuid.Nil {
		return ID[K]{}, e.Validationf("NullId", "Id cannot be empty.")
	}
	return ID[K]{value: u}, nil
}

// TryParse is Parse without the failure detail.
func TryParse[K any](s string) (ID[K], bool) {
	id, err := Parse[K](s)
	return id, err == nil
}

// UUID returns the wrapped value.
func (id ID[K]) UUID() uuid.UUID {
	return id.value
}

// IsEmpty reports whether id is the Empty sentinel.
func (id ID[K]) IsEmpty() bool {
	return id.value == uuid.Nil
}

// Equal compares by value.
func (id ID[K]) Equal(other ID[K]) bool {
	return id.value == other.value
}

// Compare orders identifiers by their byte representation. A nil other
// sorts before every identifier.
func (id ID[K]) Compare(other *ID[K]) int {
	if other == nil {
		return 1
	}
	return strings.Compare(id.value.String(), other.value.String())
}

func (id ID[K]) String() string {
	return id.value.String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID[K]) MarshalText() ([]byte, error) {
	return []byte(id.value.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the rules of Parse.
func (id *ID[K]) UnmarshalText(text []byte) error {
	parsed, err := Parse[K](string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
