package valueobjects

import (
	e "github.com/testnest/admin/internal/admin/errors"
)

// EmployeeStatus is the employment state of an employee.
type EmployeeStatus struct {
	ID   int
	Name string
}

var (
	EmployeeActive     = EmployeeStatus{ID: 1, Name: "Active"}
	EmployeeInactive   = EmployeeStatus{ID: 2, Name: "Inactive"}
	EmployeeOnLeave    = EmployeeStatus{ID: 3, Name: "OnLeave"}
	EmployeeTerminated = EmployeeStatus{ID: 4, Name: "Terminated"}
)

var employeeStatuses = []EmployeeStatus{EmployeeActive, EmployeeInactive, EmployeeOnLeave, EmployeeTerminated}

// EmployeeStatusFromID resolves a status id.
func EmployeeStatusFromID(id int) (EmployeeStatus, error) {
	for _, s := range employeeStatuses {
		if s.ID == id {
			return s, nil
		}
	}
	return EmployeeStatus{}, e.Validationf("InvalidEmployeeStatus", "Employee status id '%d' is not valid.", id)
}

func (s EmployeeStatus) String() string { return s.Name }

// EstablishmentStatus is the operating state of an establishment.
type EstablishmentStatus struct {
	ID   int
	Name string
}

var (
	EstablishmentPending  = EstablishmentStatus{ID: 1, Name: "Pending"}
	EstablishmentActive   = EstablishmentStatus{ID: 2, Name: "Active"}
	EstablishmentInactive = EstablishmentStatus{ID: 3, Name: "Inactive"}
	EstablishmentClosed   = EstablishmentStatus{ID: 4, Name: "Closed"}
)

var establishmentStatuses = []EstablishmentStatus{EstablishmentPending, EstablishmentActive, EstablishmentInactive, EstablishmentClosed}

// EstablishmentStatusFromID resolves a status id.
func EstablishmentStatusFromID(id int) (EstablishmentStatus, error) {
	for _, s := range establishmentStatuses {
		if s.ID == id {
			return s, nil
		}
	}
	return EstablishmentStatus{}, e.Validationf("InvalidEstablishmentStatus", "Establishment status id '%d' is not valid.", id)
}

func (s EstablishmentStatus) String() string { return s.Name }
