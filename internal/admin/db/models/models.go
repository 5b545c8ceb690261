// Package models contains the database row models of the admin service,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Establishment is the row of the establishments table.
type Establishment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:50;not null;index"`
	Email     string    `gorm:"size:320;not null"`
	StatusID  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee is the row of the employees table.
type Employee struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber  string    `gorm:"size:20;not null;index"`
	FirstName       string    `gorm:"size:100;not null"`
	MiddleName      string    `gorm:"size:100"`
	LastName        string    `gorm:"size:100;not null"`
	Email           string    `gorm:"size:320;not null"`
	StatusID        int       `gorm:"not null"`
	RoleID          uuid.UUID `gorm:"type:uuid;not null;index"`
	EstablishmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EstablishmentAddress is the row of the establishment_addresses table.
type EstablishmentAddress struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	EstablishmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressLine     string    `gorm:"size:200;not null"`
	City            string    `gorm:"size:100;not null"`
	Municipality    string    `gorm:"size:100;not null"`
	Province        string    `gorm:"size:100;not null"`
	Region          string    `gorm:"size:100;not null"`
	Country         string    `gorm:"size:100;not null"`
	Latitude        float64   `gorm:"not null"`
	Longitude       float64   `gorm:"not null"`
	IsPrimary       bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EstablishmentContact is the row of the establishment_contacts table.
type EstablishmentContact struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	EstablishmentID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ContactPersonFirstName  string    `gorm:"size:100;not null"`
	ContactPersonMiddleName string    `gorm:"size:100"`
	ContactPersonLastName   string    `gorm:"size:100;not null"`
	ContactPhoneNumber      string    `gorm:"size:20;not null"`
	IsPrimary               bool      `gorm:"not null;default:false"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// EstablishmentPhone is the row of the establishment_phones table.
type EstablishmentPhone struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	EstablishmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	PhoneNumber     string    `gorm:"size:20;not null"`
	IsPrimary       bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EstablishmentMember is the row of the establishment_members table.
type EstablishmentMember struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	EstablishmentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID        uuid.UUID `gorm:"type:uuid;not null;index"`
	MemberTitle       string    `gorm:"size:100;not null"`
	MemberDescription string    `gorm:"size:500;not null"`
	MemberTag         string    `gorm:"size:50;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EmployeeRole is the row of the employee_roles table.
type EmployeeRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleName  string    `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SocialMediaPlatform is the row of the social_media_platforms table.
type SocialMediaPlatform struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:50;not null;uniqueIndex"`
	PlatformURL string    `gorm:"size:2048;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// All lists every row model for migrations.
func All() []any {
	return []any{
		&Establishment{},
		&Employee{},
		&EstablishmentAddress{},
		&EstablishmentContact{},
		&EstablishmentPhone{},
		&EstablishmentMember{},
		&EmployeeRole{},
		&SocialMediaPlatform{},
	}
}
