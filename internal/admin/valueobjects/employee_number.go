package valueobjects

import (
	"regexp"

	"github.com/testnest/admin/internal/admin/guard"
)

var employeeNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// EmployeeNumber is the badge or payroll number of an employee.
type EmployeeNumber struct {
	employeeNo string
}

func NewEmployeeNumber(employeeNo string) (EmployeeNumber, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(employeeNo, guard.Failed("EmptyEmployeeNumber", "Employee number cannot be empty.")),
		guard.AgainstLength(employeeNo, 1, 20, guard.Failed("InvalidEmployeeNumberLength", "Employee number must not exceed 20 characters.")),
		guard.AgainstRegex(employeeNo, employeeNumberPattern, guard.Failed("InvalidEmployeeNumberCharacters", "Employee number may only contain letters, digits and '-'.")),
	)
	if err != nil {
		return EmployeeNumber{}, err
	}
	return EmployeeNumber{employeeNo: employeeNo}, nil
}

func EmptyEmployeeNumber() EmployeeNumber { return EmployeeNumber{} }

func (n EmployeeNumber) Update(employeeNo string) (EmployeeNumber, error) {
	return NewEmployeeNumber(employeeNo)
}

func (n EmployeeNumber) EmployeeNo() string { return n.employeeNo }
func (n EmployeeNumber) IsEmpty() bool { return n == EmployeeNumber{} }
func (n EmployeeNumber) String() string { return n.employeeNo }
