package valueobjects

import (
	"regexp"

	"github.com/testnest/admin/internal/admin/guard"
)

var roleNamePattern = regexp.MustCompile(`^[\p{L}0-9\s&,.'()/-]+$`)

// RoleName names an employee role.
type RoleName struct {
	name string
}

func NewRoleName(name string) (RoleName, error) {
	err := guard.Aggregate(
		guard.AgainstNullOrWhiteSpace(name, guard.Failed("EmptyRoleName", "Role name cannot be empty.")),
		guard.AgainstLength(name, 3, 100, guard.Failed("InvalidRoleNameLength", "Role name must be between 3 and 100 characters.")),
		guard.AgainstRegex(name, roleNamePattern, guard.Failed("InvalidRoleNameCharacters", "Role name contains invalid characters.")),
	)
	if err != nil {
		return RoleName{}, err
	}
	return RoleName{name: name}, nil
}

func EmptyRoleName() RoleName { return RoleName{} }

func (r RoleName) Update(name string) (RoleName, error) { return NewRoleName(name) }
func (r RoleName) Name() string { return r.name }
func (r RoleName) IsEmpty() bool { return r == RoleName{} }
func (r RoleName) String() string { return r.name }
