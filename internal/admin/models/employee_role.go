package models

import (
	"github.com/testnest/admin/internal/admin/ids"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

// EmployeeRole is a named role employees can hold. Role names are unique.
type EmployeeRole struct {
	ID       ids.EmployeeRoleID
	RoleName vo.RoleName
}

// CreateEmployeeRole builds a new role with a fresh ID.
func CreateEmployeeRole(name vo.RoleName) (*EmployeeRole, error) {
	if err := requirePresent(name, "NullRoleName", "Role name is required."); err != nil {
		return nil, err
	}
	return &EmployeeRole{ID: ids.New[ids.EmployeeRole](), RoleName: name}, nil
}

func (x *EmployeeRole) GetID() ids.EmployeeRoleID { return x.ID }

// WithRoleName returns a copy with a new name.
func (x *EmployeeRole) WithRoleName(name vo.RoleName) (*EmployeeRole, error) {
	if err := requirePresent(name, "NullRoleName", "Role name is required."); err != nil {
		return nil, err
	}
	c := *x
	c.RoleName = name
	return &c, nil
}

// EmployeeRoleInput carries the raw fields of a create or full update.
type EmployeeRoleInput struct {
	RoleName string
}

// EmployeeRolePatch carries the fields of a partial update.
type EmployeeRolePatch struct {
	RoleName *string
}
