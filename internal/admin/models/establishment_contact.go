package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// EstablishmentContact is a contact person of an establishment. At most
// one contact per establishment is primary.
type EstablishmentContact struct {
	ID              ids.EstablishmentContactID
	EstablishmentID ids.EstablishmentID
	ContactPerson   vo.PersonName
	ContactPhone    vo.PhoneNumber
	IsPrimary       bool
}

// CreateEstablishmentContact builds a new contact with a fresh ID.
func CreateEstablishmentContact(
	establishmentID ids.EstablishmentID,
	person vo.PersonName,
	phone vo.PhoneNumber,
	isPrimary bool,
) (*EstablishmentContact, error) {
	if err := guard.Aggregate(
		requirePresent(establishmentID, "NullEstablishmentId", "Establishment id is required."),
		requirePresent(person, "NullPersonName", "Contact person is required."),
		requirePresent(phone, "NullPhoneNumber", "Contact phone is required."),
	); err != nil {
		return nil, err
	}
	return &EstablishmentContact{
		ID:              ids.New[ids.EstablishmentContact](),
		EstablishmentID: establishmentID,
		ContactPerson:   person,
		ContactPhone:    phone,
		IsPrimary:       isPrimary,
	}, nil
}

func (x *EstablishmentContact) GetID() ids.EstablishmentContactID { return x.ID }

// WithContactPerson returns a copy with a new contact person.
func (x *EstablishmentContact) WithContactPerson(person vo.PersonName) (*EstablishmentContact, error) {
	if err := requirePresent(person, "NullPersonName", "Contact person is required."); err != nil {
		return nil, err
	}
	c := *x
	c.ContactPerson = person
	return &c, nil
}

// WithContactPhone returns a copy with a new phone number.
func (x *EstablishmentContact) WithContactPhone(phone vo.PhoneNumber) (*EstablishmentContact, error) {
	if err := requirePresent(phone, "NullPhoneNumber", "Contact phone is required."); err != nil {
		return nil, err
	}
	c := *x
	c.ContactPhone = phone
	return &c, nil
}

// WithPrimaryFlag returns a copy with IsPrimary set.
func (x *EstablishmentContact) WithPrimaryFlag(isPrimary bool) (*EstablishmentContact, error) {
	c := *x
	c.IsPrimary = isPrimary
	return &c, nil
}

// EstablishmentContactInput carries the raw fields of a create or full update.
type EstablishmentContactInput struct {
	EstablishmentID         string
	ContactPersonFirstName  string
	ContactPersonMiddleName string
	ContactPersonLastName   string
	ContactPhoneNumber      string
	IsPrimary               bool
}

// EstablishmentContactPatch carries the fields of a partial update.
type EstablishmentContactPatch struct {
	ContactPersonFirstName  *string
	ContactPersonMiddleName *string
	ContactPersonLastName   *string
	ContactPhoneNumber      *string
	IsPrimary               *bool
}
