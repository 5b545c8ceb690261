package models

import (
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// Employee is a person employed by an establishment.
type Employee struct {
	// ID is the unique identifier of the employee.
	ID ids.EmployeeID
	// Number is the badge or payroll number.
	Number vo.EmployeeNumber
	// Name is the employee's full name.
	Name vo.PersonName
	// Email is the employee's contact address.
	Email vo.EmailAddress
	// Status is the current employment state.
	Status vo.EmployeeStatus
	// RoleID references the employee's role.
	RoleID ids.EmployeeRoleID
	// EstablishmentID references the employing establishment.
	EstablishmentID ids.EstablishmentID
}

// CreateEmployee builds a new Employee with a fresh ID.
func CreateEmployee(
	number vo.EmployeeNumber,
	name vo.PersonName,
	email vo.EmailAddress,
	status vo.EmployeeStatus,
	roleID ids.EmployeeRoleID,
	establishmentID ids.EstablishmentID,
) (*Employee, error) {
	if err := guard.Aggregate(
		requirePresent(number, "NullEmployeeNumber", "Employee number is required."),
		requirePresent(name, "NullPersonName", "Employee name is required."),
		requirePresent(email, "NullEmailAddress", "Employee email is required."),
		requirePresent(roleID, "NullEmployeeRoleId", "Employee role id is required."),
		requirePresent(establishmentID, "NullEstablishmentId", "Establishment id is required."),
	); err != nil {
		return nil, err
	}
	return &Employee{
		ID:              ids.New[ids.Employee](),
		Number:          number,
		Name:            name,
		Email:           email,
		Status:          status,
		RoleID:          roleID,
		EstablishmentID: establishmentID,
	}, nil
}

func (x *Employee) GetID() ids.EmployeeID { return x.ID }

// WithNumber returns a copy with a new employee number.
func (x *Employee) WithNumber(number vo.EmployeeNumber) (*Employee, error) {
	if err := requirePresent(number, "NullEmployeeNumber", "Employee number is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Number = number
	return &c, nil
}

// WithName returns a copy with a new name.
func (x *Employee) WithName(name vo.PersonName) (*Employee, error) {
	if err := requirePresent(name, "NullPersonName", "Employee name is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Name = name
	return &c, nil
}

// WithEmail returns a copy with a new email address.
func (x *Employee) WithEmail(email vo.EmailAddress) (*Employee, error) {
	if err := requirePresent(email, "NullEmailAddress", "Employee email is required."); err != nil {
		return nil, err
	}
	c := *x
	c.Email = email
	return &c, nil
}

// WithStatus returns a copy with a new status.
func (x *Employee) WithStatus(status vo.EmployeeStatus) (*Employee, error) {
	c := *x
	c.Status = status
	return &c, nil
}

// WithRole returns a copy assigned to another role.
func (x *Employee) WithRole(roleID ids.EmployeeRoleID) (*Employee, error) {
	if err := requirePresent(roleID, "NullEmployeeRoleId", "Employee role id is required."); err != nil {
		return nil, err
	}
	c := *x
	c.RoleID = roleID
	return &c, nil
}

// WithEstablishment returns a copy moved to another establishment.
func (x *Employee) WithEstablishment(establishmentID ids.EstablishmentID) (*Employee, error) {
	if err := requirePresent(establishmentID, "NullEstablishmentId", "Establishment id is required."); err != nil {
		return nil, err
	}
	c := *x
	c.EstablishmentID = establishmentID
	return &c, nil
}

// EmployeeInput carries the raw fields of a create or full update.
type EmployeeInput struct {
	EmployeeNumber  string
	FirstName       string
	MiddleName      string
	LastName        string
	Email           string
	StatusID        int
	RoleID          string
	EstablishmentID string
}

// EmployeePatch carries the fields of a partial update. Nil means unchanged.
type EmployeePatch struct {
	EmployeeNumber  *string
	FirstName       *string
	MiddleName      *string
	LastName        *string
	Email           *string
	StatusID        *int
	RoleID          *string
	EstablishmentID *string
}
