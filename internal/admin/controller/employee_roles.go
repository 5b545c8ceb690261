package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

type EmployeeRoleRepository interface {
	Transactor
	GetEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) (*models.EmployeeRole, error)
	ListEmployeeRoles(ctx context.Context, spec db.ListSpec) ([]*models.EmployeeRole, error)
	CountEmployeeRoles(ctx context.Context, spec db.ListSpec) (int64, error)
}

type EmployeeRoleService struct {
	service
	repo EmployeeRoleRepository
}

func NewEmployeeRoleService(repo EmployeeRoleRepository, producer EventProducer, logger *zap.Logger) *EmployeeRoleService {
	return &EmployeeRoleService{
		service: newService(events.EntityEmployeeRole, producer, logger),
		repo:    repo,
	}
}

func (s *EmployeeRoleService) GetEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) (*models.EmployeeRole, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	role, err := s.repo.GetEmployeeRole(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "EmployeeRole", id))
	}
	return role, nil
}

func (s *EmployeeRoleService) ListEmployeeRoles(ctx context.Context, spec db.ListSpec) ([]*models.EmployeeRole, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	list, err := s.repo.ListEmployeeRoles(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return list, nil
}

func (s *EmployeeRoleService) CountEmployeeRoles(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEmployeeRoles(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *EmployeeRoleService) CreateEmployeeRole(ctx context.Context, in models.EmployeeRoleInput) (*models.EmployeeRole, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	name, err := vo.NewRoleName(in.RoleName)
	if err != nil {
		return nil, s.fail(span, err)
	}

	var created *models.EmployeeRole
	err = s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := ensureUniqueRoleName(ctx, tx, name, ids.Empty[ids.EmployeeRole]()); err != nil {
			return err
		}
		role, err := models.CreateEmployeeRole(name)
		if err != nil {
			return err
		}
		if err := tx.CreateEmployeeRole(ctx, role); err != nil {
			return err
		}
		created = role
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	return created, nil
}

func (s *EmployeeRoleService) UpdateEmployeeRole(ctx context.Context, id ids.EmployeeRoleID, in models.EmployeeRoleInput) (*models.EmployeeRole, error) {
	return s.rename(ctx, "Update", id, &in.RoleName)
}

func (s *EmployeeRoleService) PatchEmployeeRole(ctx context.Context, id ids.EmployeeRoleID, patch models.EmployeeRolePatch) (*models.EmployeeRole, error) {
	return s.rename(ctx, "Patch", id, patch.RoleName)
}

// rename gives a role a new unique name. A nil or unchanged name returns
// the stored role.
func (s *EmployeeRoleService) rename(ctx context.Context, op string, id ids.EmployeeRoleID, raw *string) (*models.EmployeeRole, error) {
	ctx, span := s.start(ctx, op, id)
	defer span.End()

	var (
		result   *models.EmployeeRole
		modified bool
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEmployeeRole(ctx, id)
		if err != nil {
			return missing(err, "EmployeeRole", id)
		}
		result = existing
		if !changed(raw, existing.RoleName.Name()) {
			return nil
		}
		name, err := vo.NewRoleName(*raw)
		if err != nil {
			return err
		}
		if err := ensureUniqueRoleName(ctx, tx, name, id); err != nil {
			return err
		}
		role, err := existing.WithRoleName(name)
		if err != nil {
			return err
		}
		if err := tx.UpdateEmployeeRole(ctx, role); err != nil {
			return err
		}
		result, modified = role, true
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if modified {
		s.publish(events.Updated, id)
	}
	return result, nil
}

// DeleteEmployeeRole removes a role no employee holds.
func (s *EmployeeRoleService) DeleteEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetEmployeeRole(ctx, id); err != nil {
			return missing(err, "EmployeeRole", id)
		}
		inUse, err := tx.EmployeeRoleInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return e.Conflictf("RoleInUse", "Employee role with ID '%s' is still assigned to employees.", id)
		}
		return tx.DeleteEmployeeRole(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

func ensureUniqueRoleName(ctx context.Context, tx *db.Repository, name vo.RoleName, excludeID ids.EmployeeRoleID) error {
	taken, err := tx.EmployeeRoleNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicateRoleName", "Employee role '%s' already exists.", name)
	}
	return nil
}
