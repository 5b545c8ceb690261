package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/guard"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

type EmployeeRepository interface {
	Transactor
	GetEmployee(ctx context.Context, id ids.EmployeeID) (*models.Employee, error)
	ListEmployees(ctx context.Context, spec db.ListSpec) ([]*models.Employee, error)
	CountEmployees(ctx context.Context, spec db.ListSpec) (int64, error)
}

// EmployeeService manages employees. An employee references an existing
// establishment and role.
type EmployeeService struct {
	service
	repo EmployeeRepository
}

func NewEmployeeService(repo EmployeeRepository, producer EventProducer, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		service: newService(events.EntityEmployee, producer, logger),
		repo:    repo,
	}
}

// employeeFields is the validated form of an EmployeeInput.
type employeeFields struct {
	number          vo.EmployeeNumber
	name            vo.PersonName
	email           vo.EmailAddress
	status          vo.EmployeeStatus
	roleID          ids.EmployeeRoleID
	establishmentID ids.EstablishmentID
}

func parseEmployee(in models.EmployeeInput) (employeeFields, error) {
	var f employeeFields
	var numberErr, nameErr, emailErr, statusErr, roleErr, establishmentErr error
	f.number, numberErr = vo.NewEmployeeNumber(in.EmployeeNumber)
	f.name, nameErr = vo.NewPersonName(in.FirstName, in.MiddleName, in.LastName)
	f.email, emailErr = vo.NewEmailAddress(in.Email)
	f.status, statusErr = vo.EmployeeStatusFromID(in.StatusID)
	f.roleID, roleErr = ids.Parse[ids.EmployeeRole](in.RoleID)
	f.establishmentID, establishmentErr = ids.Parse[ids.Establishment](in.EstablishmentID)
	return f, guard.Aggregate(numberErr, nameErr, emailErr, statusErr, roleErr, establishmentErr)
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id ids.EmployeeID) (*models.Employee, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "Employee", id))
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, spec db.ListSpec) ([]*models.Employee, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	list, err := s.repo.ListEmployees(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return list, nil
}

func (s *EmployeeService) CountEmployees(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEmployees(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	f, err := parseEmployee(in)
	if err != nil {
		return nil, s.fail(span, err)
	}

	var created *models.Employee
	err = s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := s.checkReferences(ctx, tx, f, ids.Empty[ids.Employee]()); err != nil {
			return err
		}
		employee, err := models.CreateEmployee(f.number, f.name, f.email, f.status, f.roleID, f.establishmentID)
		if err != nil {
			return err
		}
		if err := tx.CreateEmployee(ctx, employee); err != nil {
			return err
		}
		created = employee
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	return created, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id ids.EmployeeID, in models.EmployeeInput) (*models.Employee, error) {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	f, err := parseEmployee(in)
	if err != nil {
		return nil, s.fail(span, err)
	}

	var updated *models.Employee
	err = s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEmployee(ctx, id)
		if err != nil {
			return missing(err, "Employee", id)
		}
		if err := s.checkReferences(ctx, tx, f, id); err != nil {
			return err
		}
		employee, err := applyEmployee(existing, f)
		if err != nil {
			return err
		}
		if err := tx.UpdateEmployee(ctx, employee); err != nil {
			return err
		}
		updated = employee
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Updated, id)
	return updated, nil
}

// PatchEmployee overlays the supplied fields on the stored employee and
// validates the merged result like a full update.
func (s *EmployeeService) PatchEmployee(ctx context.Context, id ids.EmployeeID, patch models.EmployeePatch) (*models.Employee, error) {
	ctx, span := s.start(ctx, "Patch", id)
	defer span.End()

	var (
		result   *models.Employee
		modified bool
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEmployee(ctx, id)
		if err != nil {
			return missing(err, "Employee", id)
		}

		current := models.EmployeeInput{
			EmployeeNumber:  existing.Number.EmployeeNo(),
			FirstName:       existing.Name.FirstName(),
			MiddleName:      existing.Name.MiddleName(),
			LastName:        existing.Name.LastName(),
			Email:           existing.Email.Email(),
			StatusID:        existing.Status.ID,
			RoleID:          existing.RoleID.String(),
			EstablishmentID: existing.EstablishmentID.String(),
		}
		merged := models.EmployeeInput{
			EmployeeNumber:  valueOr(patch.EmployeeNumber, current.EmployeeNumber),
			FirstName:       valueOr(patch.FirstName, current.FirstName),
			MiddleName:      valueOr(patch.MiddleName, current.MiddleName),
			LastName:        valueOr(patch.LastName, current.LastName),
			Email:           valueOr(patch.Email, current.Email),
			StatusID:        valueOr(patch.StatusID, current.StatusID),
			RoleID:          valueOr(patch.RoleID, current.RoleID),
			EstablishmentID: valueOr(patch.EstablishmentID, current.EstablishmentID),
		}

		result = existing
		if merged == current {
			return nil
		}
		modified = true

		f, err := parseEmployee(merged)
		if err != nil {
			return err
		}
		if err := s.checkReferences(ctx, tx, f, id); err != nil {
			return err
		}
		employee, err := applyEmployee(existing, f)
		if err != nil {
			return err
		}
		result = employee
		return tx.UpdateEmployee(ctx, employee)
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if modified {
		s.publish(events.Updated, id)
	}
	return result, nil
}

// DeleteEmployee removes an employee that holds no memberships.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id ids.EmployeeID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetEmployee(ctx, id); err != nil {
			return missing(err, "Employee", id)
		}
		member, err := tx.EmployeeHasMemberships(ctx, id)
		if err != nil {
			return err
		}
		if member {
			return e.Conflictf("EmployeeInUse", "Employee with ID '%s' is still a member of an establishment.", id)
		}
		return tx.DeleteEmployee(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

// checkReferences verifies the establishment and role exist and that no
// other employee has the same combination of fields.
func (s *EmployeeService) checkReferences(ctx context.Context, tx *db.Repository, f employeeFields, excludeID ids.EmployeeID) error {
	if err := requireEstablishment(ctx, tx, f.establishmentID); err != nil {
		return err
	}
	if err := requireEmployeeRole(ctx, tx, f.roleID); err != nil {
		return err
	}
	taken, err := tx.EmployeeExistsWithSameCombination(ctx, f.number, f.name, f.email, f.establishmentID, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicateEmployee",
			"Employee '%s' with number '%s' already exists in this establishment.", f.name, f.number)
	}
	return nil
}

func applyEmployee(existing *models.Employee, f employeeFields) (*models.Employee, error) {
	employee, err := existing.WithNumber(f.number)
	if err != nil {
		return nil, err
	}
	if employee, err = employee.WithName(f.name); err != nil {
		return nil, err
	}
	if employee, err = employee.WithEmail(f.email); err != nil {
		return nil, err
	}
	if employee, err = employee.WithStatus(f.status); err != nil {
		return nil, err
	}
	if employee, err = employee.WithRole(f.roleID); err != nil {
		return nil, err
	}
	return employee.WithEstablishment(f.establishmentID)
}
