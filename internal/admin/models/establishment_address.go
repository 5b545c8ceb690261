package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// EstablishmentAddress is one of the postal addresses of an establishment.
// At most one address per establishment is primary.
type EstablishmentAddress struct {
	ID              ids.EstablishmentAddressID
	EstablishmentID ids.EstablishmentID
	Address         vo.Address
	IsPrimary       bool
}

// CreateEstablishmentAddress builds a new address with a fresh ID.
func CreateEstablishmentAddress(establishmentID ids.EstablishmentID, address vo.Address, isPrimary bool) (*EstablishmentAddress, error) {
	if err := guard.Aggregate(
		requirePresent(establishmentID, "NullEstablishmentId", "Establishment id is required."),
		requirePresent(address, "NullAddress", "Address is required."),
	); err != nil {
		return nil, err
	}
	return &EstablishmentAddress{
		ID:              ids.New[ids.EstablishmentAddress](),
		EstablishmentID: establishmentID,
		Address:         address,
		IsPrimary:       isPrimary,
	}, nil
}

func (x *EstablishmentAddress) GetID() ids.EstablishmentAddressID { return x.ID }

// WithAddress returns a copy with a new address.
func (x *EstablishmentAddress) WithAddress(address vo.Address) (*EstablishmentAddress, error) {
	if err := requirePresent(address, "NullAddress", "Address is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Address = address
	return &c, nil
}

// WithPrimaryFlag returns a copy with IsPrimary set.
func (x *EstablishmentAddress) WithPrimaryFlag(isPrimary bool) (*EstablishmentAddress, error) {
	c := *x
	c.IsPrimary = isPrimary
	return &c, nil
}

// EstablishmentAddressInput carries the raw fields of a create or full update.
type EstablishmentAddressInput struct {
	EstablishmentID string
	AddressLine     string
	City            string
	Municipality    string
	Province        string
	Region          string
	Country         string
	Latitude        float64
	Longitude       float64
	IsPrimary       bool
}

// Parts extracts the address fields.
func (in EstablishmentAddressInput) Parts() vo.AddressParts {
	return vo.AddressParts{
		AddressLine:  in.AddressLine,
		City:         in.City,
		Municipality: in.Municipality,
		Province:     in.Province,
		Region:       in.Region,
		Country:      in.Country,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	}
}

// EstablishmentAddressPatch carries the fields of a partial update.
type EstablishmentAddressPatch struct {
	AddressLine  *string
	City         *string
	Municipality *string
	Province     *string
	Region       *string
	Country      *string
	Latitude     *float64
	Longitude    *float64
	IsPrimary    *bool
}

// ApplyTo overlays the non-nil fields of p on base.
func (p EstablishmentAddressPatch) ApplyTo(base vo.AddressParts) vo.AddressParts {
	if p.AddressLine != nil {
		base.AddressLine = *p.AddressLine
	}
	if p.City != nil {
		base.City = *p.City
	}
	if p.Municipality != nil {
		base.Municipality = *p.Municipality
	}
	if p.Province != nil {
		base.Province = *p.Province
	}
	if p.Region != nil {
		base.Region = *p.Region
	}
	if p.Country != nil {
		base.Country = *p.Country
	}
	if p.Latitude != nil {
		base.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		base.Longitude = *p.Longitude
	}
	return base
}
