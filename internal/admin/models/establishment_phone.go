package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// EstablishmentPhone is a phone line of an establishment. At most one
// phone per establishment is primary.
type EstablishmentPhone struct {
	ID              ids.EstablishmentPhoneID
	EstablishmentID ids.EstablishmentID
	PhoneNumber     vo.PhoneNumber
	IsPrimary       bool
}

// CreateEstablishmentPhone builds a new phone with a fresh ID.
func CreateEstablishmentPhone(establishmentID ids.EstablishmentID, phone vo.PhoneNumber, isPrimary bool) (*EstablishmentPhone, error) {
	if err := guard.Aggregate(
		requirePresent(establishmentID, "NullEstablishmentId", "Establishment id is required."),
		requirePresent(phone, "NullPhoneNumber", "Phone number is required."),
	); err != nil {
		return nil, err
	}
	return &EstablishmentPhone{
		ID:              ids.New[ids.EstablishmentPhone](),
		EstablishmentID: establishmentID,
		PhoneNumber:     phone,
		IsPrimary:       isPrimary,
	}, nil
}

func (x *EstablishmentPhone) GetID() ids.EstablishmentPhoneID { return x.ID }

// WithPhoneNumber returns a copy with a new number.
func (x *EstablishmentPhone) WithPhoneNumber(phone vo.PhoneNumber) (*EstablishmentPhone, error) {
	if err := requirePresent(phone, "NullPhoneNumber", "Phone number is required."); err != nil {
		return nil, err
	}
	c := *x
	c.PhoneNumber = phone
	return &c, nil
}

// WithPrimaryFlag returns a copy with IsPrimary set.
func (x *EstablishmentPhone) WithPrimaryFlag(isPrimary bool) (*EstablishmentPhone, error) {
	c := *x
	c.IsPrimary = isPrimary
	return &c, nil
}

// EstablishmentPhoneInput carries the raw fields of a create or full update.
type EstablishmentPhoneInput struct {
	EstablishmentID string
	PhoneNumber     string
	IsPrimary       bool
}

// EstablishmentPhonePatch carries the fields of a partial update.
type EstablishmentPhonePatch struct {
	PhoneNumber *string
	IsPrimary   *bool
}
