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

type EstablishmentMemberRepository interface {
	Transactor
	GetEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) (*models.EstablishmentMember, error)
	ListEstablishmentMembers(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentMember, error)
	CountEstablishmentMembers(ctx context.Context, spec db.ListSpec) (int64, error)
}

// EstablishmentMemberService manages memberships. A member must be an
// employee of the same establishment and may join it only once.
type EstablishmentMemberService struct {
	service
	repo EstablishmentMemberRepository
}

func NewEstablishmentMemberService(repo EstablishmentMemberRepository, producer EventProducer, logger *zap.Logger) *EstablishmentMemberService {
	return &EstablishmentMemberService{
		service: newService(events.EntityEstablishmentMember, producer, logger),
		repo:    repo,
	}
}

func (s *EstablishmentMemberService) GetEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) (*models.EstablishmentMember, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	member, err := s.repo.GetEstablishmentMember(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "EstablishmentMember", id))
	}
	return member, nil
}

func (s *EstablishmentMemberService) ListEstablishmentMembers(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentMember, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	list, err := s.repo.ListEstablishmentMembers(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return list, nil
}

func (s *EstablishmentMemberService) CountEstablishmentMembers(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEstablishmentMembers(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *EstablishmentMemberService) CreateEstablishmentMember(ctx context.Context, in models.EstablishmentMemberInput) (*models.EstablishmentMember, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	establishmentID, establishmentErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	employeeID, employeeErr := ids.Parse[ids.Employee](in.EmployeeID)
	title, titleErr := vo.NewMemberTitle(in.MemberTitle)
	description, descriptionErr := vo.NewMemberDescription(in.MemberDescription)
	tag, tagErr := vo.NewMemberTag(in.MemberTag)
	if err := guard.Aggregate(establishmentErr, employeeErr, titleErr, descriptionErr, tagErr); err != nil {
		return nil, s.fail(span, err)
	}

	var created *models.EstablishmentMember
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		if err := checkMembership(ctx, tx, establishmentID, employeeID, ids.Empty[ids.EstablishmentMember]()); err != nil {
			return err
		}
		member, err := models.CreateEstablishmentMember(establishmentID, employeeID, title, description, tag)
		if err != nil {
			return err
		}
		if err := tx.CreateEstablishmentMember(ctx, member); err != nil {
			return err
		}
		created = member
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	return created, nil
}

// UpdateEstablishmentMember replaces the title, description and tag of a
// membership. The employee of a membership is kept.
func (s *EstablishmentMemberService) UpdateEstablishmentMember(
	ctx context.Context,
	id ids.EstablishmentMemberID,
	in models.EstablishmentMemberInput,
) (*models.EstablishmentMember, error) {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	establishmentID, establishmentErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	title, titleErr := vo.NewMemberTitle(in.MemberTitle)
	description, descriptionErr := vo.NewMemberDescription(in.MemberDescription)
	tag, tagErr := vo.NewMemberTag(in.MemberTag)
	if err := guard.Aggregate(establishmentErr, titleErr, descriptionErr, tagErr); err != nil {
		return nil, s.fail(span, err)
	}

	var updated *models.EstablishmentMember
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		existing, err := tx.GetEstablishmentMember(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentMember", id)
		}
		if err := sameEstablishment("member", establishmentID, existing.EstablishmentID); err != nil {
			return err
		}
		if err := checkMembership(ctx, tx, establishmentID, existing.EmployeeID, id); err != nil {
			return err
		}
		member, err := existing.WithTitle(title)
		if err != nil {
			return err
		}
		if member, err = member.WithDescription(description); err != nil {
			return err
		}
		if member, err = member.WithTag(tag); err != nil {
			return err
		}
		if err := tx.UpdateEstablishmentMember(ctx, member); err != nil {
			return err
		}
		updated = member
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Updated, id)
	return updated, nil
}

// PatchEstablishmentMember applies the supplied fields. Moving a membership
// to another employee repeats the employee checks of a create.
func (s *EstablishmentMemberService) PatchEstablishmentMember(
	ctx context.Context,
	id ids.EstablishmentMemberID,
	patch models.EstablishmentMemberPatch,
) (*models.EstablishmentMember, error) {
	ctx, span := s.start(ctx, "Patch", id)
	defer span.End()

	var (
		result   *models.EstablishmentMember
		modified bool
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentMember(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentMember", id)
		}

		employeeID, title, description, tag := existing.EmployeeID, existing.Title, existing.Description, existing.Tag
		var employeeErr, titleErr, descriptionErr, tagErr error
		employeeChanged := changed(patch.EmployeeID, employeeID.String())
		if employeeChanged {
			employeeID, employeeErr = ids.Parse[ids.Employee](*patch.EmployeeID)
		}
		if changed(patch.MemberTitle, title.Title()) {
			title, titleErr = vo.NewMemberTitle(*patch.MemberTitle)
			modified = true
		}
		if changed(patch.MemberDescription, description.Description()) {
			description, descriptionErr = vo.NewMemberDescription(*patch.MemberDescription)
			modified = true
		}
		if changed(patch.MemberTag, tag.Tag()) {
			tag, tagErr = vo.NewMemberTag(*patch.MemberTag)
			modified = true
		}
		if err := guard.Aggregate(employeeErr, titleErr, descriptionErr, tagErr); err != nil {
			return err
		}
		if employeeChanged && !employeeID.Equal(existing.EmployeeID) {
			if err := checkMembership(ctx, tx, existing.EstablishmentID, employeeID, id); err != nil {
				return err
			}
			modified = true
		}

		result = existing
		if !modified {
			return nil
		}
		member, err := existing.WithEmployee(employeeID)
		if err != nil {
			return err
		}
		if member, err = member.WithTitle(title); err != nil {
			return err
		}
		if member, err = member.WithDescription(description); err != nil {
			return err
		}
		if member, err = member.WithTag(tag); err != nil {
			return err
		}
		result = member
		return tx.UpdateEstablishmentMember(ctx, member)
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if modified {
		s.publish(events.Updated, id)
	}
	return result, nil
}

func (s *EstablishmentMemberService) DeleteEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetEstablishmentMember(ctx, id); err != nil {
			return missing(err, "EstablishmentMember", id)
		}
		return tx.DeleteEstablishmentMember(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

// checkMembership verifies the employee exists, belongs to the
// establishment and is not yet a member of it through another membership.
func checkMembership(
	ctx context.Context,
	tx *db.Repository,
	establishmentID ids.EstablishmentID,
	employeeID ids.EmployeeID,
	excludeID ids.EstablishmentMemberID,
) error {
	employee, err := tx.GetEmployee(ctx, employeeID)
	if err != nil {
		return missing(err, "Employee", employeeID)
	}
	if !employee.EstablishmentID.Equal(establishmentID) {
		return e.Validationf("EmployeeNotInEstablishment",
			"Employee with ID '%s' does not belong to Establishment with ID '%s'.", employeeID, establishmentID)
	}
	member, err := tx.EstablishmentMemberExists(ctx, establishmentID, employeeID, excludeID)
	if err != nil {
		return err
	}
	if member {
		return e.Conflictf("DuplicateMember",
			"Employee with ID '%s' already exists as a member in this establishment.", employeeID)
	}
	return nil
}
