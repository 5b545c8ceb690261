package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var roleColumns = columns{
	"id":             "id",
	"employeeroleid": "id",
	"rolename":       "role_name",
}

func roleFromRow(row *dbmodels.EmployeeRole) (*models.EmployeeRole, error) {
	id := ids.FromUUID[ids.EmployeeRole](row.ID)
	name, err := vo.NewRoleName(row.RoleName)
	if err != nil {
		return nil, corrupt("employee role", id, err)
	}
	return &models.EmployeeRole{ID: id, RoleName: name}, nil
}

func roleToRow(x *models.EmployeeRole) *dbmodels.EmployeeRole {
	return &dbmodels.EmployeeRole{ID: x.ID.UUID(), RoleName: x.RoleName.Name()}
}

func (r *Repository) CreateEmployeeRole(ctx context.Context, role *models.EmployeeRole) error {
	if err := r.db.WithContext(ctx).Create(roleToRow(role)).Error; err != nil {
		return translate(err, "create employee role")
	}
	return nil
}

func (r *Repository) GetEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) (*models.EmployeeRole, error) {
	row, err := getRow[dbmodels.EmployeeRole](ctx, r.db, id, "employee role")
	if err != nil {
		return nil, err
	}
	return roleFromRow(row)
}

func (r *Repository) UpdateEmployeeRole(ctx context.Context, role *models.EmployeeRole) error {
	return saveRow(ctx, r.db, roleToRow(role), role.ID, "employee role")
}

func (r *Repository) DeleteEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) error {
	return deleteRow[dbmodels.EmployeeRole](ctx, r.db, id, "employee role")
}

func (r *Repository) ListEmployeeRoles(ctx context.Context, spec ListSpec) ([]*models.EmployeeRole, error) {
	var rows []dbmodels.EmployeeRole
	err := r.db.WithContext(ctx).
		Scopes(roleColumns.filter(spec), roleColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list employee roles")
	}
	out := make([]*models.EmployeeRole, 0, len(rows))
	for i := range rows {
		x, err := roleFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (r *Repository) CountEmployeeRoles(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.EmployeeRole{}).
		Scopes(roleColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count employee roles")
}

func (r *Repository) EmployeeRoleExists(ctx context.Context, id ids.EmployeeRoleID) (bool, error) {
	found, err := exists[dbmodels.EmployeeRole](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("id = ?", id.UUID())
	})
	return found, translate(err, "check employee role")
}

// EmployeeRoleNameExists reports whether a role other than excludeID is
// already called name.
func (r *Repository) EmployeeRoleNameExists(ctx context.Context, name vo.RoleName, excludeID ids.EmployeeRoleID) (bool, error) {
	found, err := exists[dbmodels.EmployeeRole](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return excluding(q.Where("role_name = ?", name.Name()), excludeID)
	})
	return found, translate(err, "check employee role name")
}

// EmployeeRoleInUse reports whether any employee holds role id.
func (r *Repository) EmployeeRoleInUse(ctx context.Context, id ids.EmployeeRoleID) (bool, error) {
	found, err := exists[dbmodels.Employee](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("role_id = ?", id.UUID())
	})
	return found, translate(err, "check employee role usage")
}
