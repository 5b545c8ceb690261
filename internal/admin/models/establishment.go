package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// Establishment is a business site that owns addresses, contacts, phones
// and members.
type Establishment struct {
	// ID is the unique identifier of the establishment.
	ID ids.EstablishmentID
	// Name is the display name.
	Name vo.EstablishmentName
	// Email is the establishment's contact address.
	Email vo.EmailAddress
	// Status is the operating state.
	Status vo.EstablishmentStatus
}

// CreateEstablishment builds a new Establishment with a fresh ID.
func CreateEstablishment(name vo.EstablishmentName, email vo.EmailAddress, status vo.EstablishmentStatus) (*Establishment, error) {
	if err := guard.Aggregate(
		requirePresent(name, "NullEstablishmentName", "Establishment name is required."),
		requirePresent(email, "NullEmailAddress", "Establishment email is required."),
	); err != nil {
		return nil, err
	}
	return &Establishment{
		ID:     ids.New[ids.Establishment](),
		Name:   name,
		Email:  email,
		Status: status,
	}, nil
}

func (x *Establishment) GetID() ids.EstablishmentID { return x.ID }

// WithName returns a copy with a new name.
func (x *Establishment) WithName(name vo.EstablishmentName) (*Establishment, error) {
	if err := requirePresent(name, "NullEstablishmentName", "Establishment name is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Name = name
	return &c, nil
}

// WithEmail returns a copy with a new email address.
func (x *Establishment) WithEmail(email vo.EmailAddress) (*Establishment, error) {
	if err := requirePresent(email, "NullEmailAddress", "Establishment email is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Email = email
	return &c, nil
}

// WithStatus returns a copy with a new status.
func (x *Establishment) WithStatus(status vo.EstablishmentStatus) (*Establishment, error) {
	c := *x
	c.Status = status
	return &c, nil
}

// EstablishmentInput carries the raw fields of a create or full update.
type EstablishmentInput struct {
	Name     string
	Email    string
	StatusID int
}

// EstablishmentPatch carries the fields of a partial update.
type EstablishmentPatch struct {
	Name     *string
	Email    *string
	StatusID *int
}
