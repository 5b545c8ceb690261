package valueobjects

import (
	"fmt"
	"strings"

	"github.com/testnest/admin/internal/admin/guard"
)

// Address is a postal address with its geographic coordinates.
type Address struct {
	addressLine  string
	city         string
	municipality string
	province     string
	region       string
	country      string
	latitude     float64
	longitude    float64
}

// AddressParts carries the raw fields of an Address.
type AddressParts struct {
	AddressLine  string
	City         string
	Municipality string
	Province     string
	Region       string
	Country      string
	Latitude     float64
	Longitude    float64
}

func textPart(value, field string, max int) []error {
	return []error{
		guard.AgainstNullOrWhiteSpace(value, guard.Failed("Empty"+field, field+" cannot be empty.")),
		guard.AgainstLength(value, 1, max, guard.Failed("Invalid"+field+"Length", fmt.Sprintf("%s must not exceed %d characters.", field, max))),
	}
}

// NewAddress validates every part of p.
func NewAddress(p AddressParts) (Address, error) {
	var checks []error
	checks = append(checks, textPart(p.AddressLine, "AddressLine", 200)...)
	checks = append(checks, textPart(p.City, "City", 100)...)
	checks = append(checks, textPart(p.Municipality, "Municipality", 100)...)
	checks = append(checks, textPart(p.Province, "Province", 100)...)
	checks = append(checks, textPart(p.Region, "Region", 100)...)
	checks = append(checks, textPart(p.Country, "Country", 100)...)
	checks = append(checks,
		guard.AgainstRange(p.Latitude, -90, 90, guard.Failed("InvalidLatitude", "Latitude must be between -90 and 90.")),
		guard.AgainstRange(p.Longitude, -180, 180, guard.Failed("InvalidLongitude", "Longitude must be between -180 and 180.")),
	)
	if err := guard.Aggregate(checks...); err != nil {
		return Address{}, err
	}
	return Address{
		addressLine:  strings.TrimSpace(p.AddressLine),
		city:         strings.TrimSpace(p.City),
		municipality: strings.TrimSpace(p.Municipality),
		province:     strings.TrimSpace(p.Province),
		region:       strings.TrimSpace(p.Region),
		country:      strings.TrimSpace(p.Country),
		latitude:     p.Latitude,
		longitude:    p.Longitude,
	}, nil
}

func EmptyAddress() Address { return Address{} }

// Update re-validates a full replacement.
func (a Address) Update(p AddressParts) (Address, error) { return NewAddress(p) }

// Parts returns the raw fields, handy as a base for partial changes.
func (a Address) Parts() AddressParts {
	return AddressParts{
		AddressLine:  a.addressLine,
		City:         a.city,
		Municipality: a.municipality,
		Province:     a.province,
		Region:       a.region,
		Country:      a.country,
		Latitude:     a.latitude,
		Longitude:    a.longitude,
	}
}

func (a Address) AddressLine() string { return a.addressLine }
func (a Address) City() string { return a.city }
func (a Address) Municipality() string { return a.municipality }
func (a Address) Province() string { return a.province }
func (a Address) Region() string { return a.region }
func (a Address) Country() string { return a.country }
func (a Address) Latitude() float64 { return a.latitude }
func (a Address) Longitude() float64 { return a.longitude }
func (a Address) IsEmpty() bool { return a == Address{} }

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s (%g, %g)",
		a.addressLine, a.municipality, a.city, a.province, a.region, a.country, a.latitude, a.longitude)
}
