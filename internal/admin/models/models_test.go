package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

func mustPhone(t *testing.T, s string) vo.PhoneNumber {
	t.Helper()
	p, err := vo.NewPhoneNumber(s)
	require.NoError(t, err)
	return p
}

func TestCreateEstablishmentPhone(t *testing.T) {
	estID := ids.New[ids.Establishment]()
	phone := mustPhone(t, "09175550101")

	p, err := CreateEstablishmentPhone(estID, phone, true)
	require.NoError(t, err)
	assert.False(t, p.ID.IsEmpty())
	assert.True(t, p.IsPrimary)
	assert.Equal(t, p.ID, p.GetID())

	_, err = CreateEstablishmentPhone(ids.Empty[ids.Establishment](), vo.EmptyPhoneNumber(), false)
	var f *e.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, e.Validation, f.Type)
	assert.Equal(t, []string{"NullEstablishmentId", "NullPhoneNumber"}, f.Codes())
}

func TestWithMethodsReturnCopies(t *testing.T) {
	estID := ids.New[ids.Establishment]()
	original, err := CreateEstablishmentPhone(estID, mustPhone(t, "09175550101"), false)
	require.NoError(t, err)

	promoted, err := original.WithPrimaryFlag(true)
	require.NoError(t, err)
	assert.True(t, promoted.IsPrimary)
	assert.False(t, original.IsPrimary, "original must not change")
	assert.Equal(t, original.ID, promoted.ID)

	renumbered, err := original.WithPhoneNumber(mustPhone(t, "0288880000"))
	require.NoError(t, err)
	assert.Equal(t, "0288880000", renumbered.PhoneNumber.PhoneNo())
	assert.Equal(t, "09175550101", original.PhoneNumber.PhoneNo())

	_, err = original.WithPhoneNumber(vo.EmptyPhoneNumber())
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestCreateEmployee(t *testing.T) {
	number, err := vo.NewEmployeeNumber("EMP-1")
	require.NoError(t, err)
	name, err := vo.NewPersonName("Ana", "", "Reyes")
	require.NoError(t, err)
	email, err := vo.NewEmailAddress("ana@example.com")
	require.NoError(t, err)

	emp, err := CreateEmployee(number, name, email, vo.EmployeeActive, ids.New[ids.EmployeeRole](), ids.New[ids.Establishment]())
	require.NoError(t, err)
	assert.Equal(t, "Active", emp.Status.Name)

	moved, err := emp.WithEstablishment(ids.New[ids.Establishment]())
	require.NoError(t, err)
	assert.False(t, moved.EstablishmentID.Equal(emp.EstablishmentID))

	_, err = CreateEmployee(number, name, email, vo.EmployeeActive, ids.Empty[ids.EmployeeRole](), ids.New[ids.Establishment]())
	var f *e.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, []string{"NullEmployeeRoleId"}, f.Codes())
}

func TestCreateEstablishmentMember(t *testing.T) {
	title, _ := vo.NewMemberTitle("Manager")
	desc, _ := vo.NewMemberDescription("Runs the floor")
	tag, _ := vo.NewMemberTag("floor")

	m, err := CreateEstablishmentMember(ids.New[ids.Establishment](), ids.New[ids.Employee](), title, desc, tag)
	require.NoError(t, err)
	assert.Equal(t, "Manager", m.Title.Title())

	_, err = CreateEstablishmentMember(ids.New[ids.Establishment](), ids.New[ids.Employee](), vo.EmptyMemberTitle(), desc, vo.EmptyMemberTag())
	var f *e.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, []string{"NullMemberTitle", "NullMemberTag"}, f.Codes())
}

func TestAddressPatchApplyTo(t *testing.T) {
	city := "Pasig"
	lat := 14.57
	base := vo.AddressParts{AddressLine: "1 Main", City: "Makati", Latitude: 1, Longitude: 2}

	got := EstablishmentAddressPatch{City: &city, Latitude: &lat}.ApplyTo(base)
	assert.Equal(t, "Pasig", got.City)
	assert.Equal(t, 14.57, got.Latitude)
	assert.Equal(t, "1 Main", got.AddressLine)
	assert.Equal(t, 2.0, got.Longitude)
}

func TestRoleAndPlatform(t *testing.T) {
	rn, err := vo.NewRoleName("Cashier")
	require.NoError(t, err)
	role, err := CreateEmployeeRole(rn)
	require.NoError(t, err)
	_, err = role.WithRoleName(vo.EmptyRoleName())
	assert.Error(t, err)

	sm, err := vo.NewSocialMediaName("facebook", "https://facebook.com")
	require.NoError(t, err)
	platform, err := CreateSocialMediaPlatform(sm)
	require.NoError(t, err)
	assert.Equal(t, "facebook", platform.Name.Name())

	_, err = CreateSocialMediaPlatform(vo.EmptySocialMediaName())
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}
