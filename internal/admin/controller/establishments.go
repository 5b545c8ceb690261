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

type EstablishmentRepository interface {
	Transactor
	GetEstablishment(ctx context.Context, id ids.EstablishmentID) (*models.Establishment, error)
	ListEstablishments(ctx context.Context, spec db.ListSpec) ([]*models.Establishment, error)
	CountEstablishments(ctx context.Context, spec db.ListSpec) (int64, error)
}

// EstablishmentService manages establishments. The pair of name and email
// identifies an establishment.
type EstablishmentService struct {
	service
	repo EstablishmentRepository
}

func NewEstablishmentService(repo EstablishmentRepository, producer EventProducer, logger *zap.Logger) *EstablishmentService {
	return &EstablishmentService{
		service: newService(events.EntityEstablishment, producer, logger),
		repo:    repo,
	}
}

func (s *EstablishmentService) GetEstablishment(ctx context.Context, id ids.EstablishmentID) (*models.Establishment, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	establishment, err := s.repo.GetEstablishment(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "Establishment", id))
	}
	return establishment, nil
}

func (s *EstablishmentService) ListEstablishments(ctx context.Context, spec db.ListSpec) ([]*models.Establishment, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	list, err := s.repo.ListEstablishments(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return list, nil
}

func (s *EstablishmentService) CountEstablishments(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEstablishments(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *EstablishmentService) CreateEstablishment(ctx context.Context, in models.EstablishmentInput) (*models.Establishment, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	name, nameErr := vo.NewEstablishmentName(in.Name)
	email, emailErr := vo.NewEmailAddress(in.Email)
	status, statusErr := vo.EstablishmentStatusFromID(in.StatusID)
	if err := guard.Aggregate(nameErr, emailErr, statusErr); err != nil {
		return nil, s.fail(span, err)
	}

	var created *models.Establishment
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := ensureUniqueEstablishment(ctx, tx, name, email, ids.Empty[ids.Establishment]()); err != nil {
			return err
		}
		establishment, err := models.CreateEstablishment(name, email, status)
		if err != nil {
			return err
		}
		if err := tx.CreateEstablishment(ctx, establishment); err != nil {
			return err
		}
		created = establishment
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	return created, nil
}

func (s *EstablishmentService) UpdateEstablishment(ctx context.Context, id ids.EstablishmentID, in models.EstablishmentInput) (*models.Establishment, error) {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	name, nameErr := vo.NewEstablishmentName(in.Name)
	email, emailErr := vo.NewEmailAddress(in.Email)
	status, statusErr := vo.EstablishmentStatusFromID(in.StatusID)
	if err := guard.Aggregate(nameErr, emailErr, statusErr); err != nil {
		return nil, s.fail(span, err)
	}

	var updated *models.Establishment
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishment(ctx, id)
		if err != nil {
			return missing(err, "Establishment", id)
		}
		if err := ensureUniqueEstablishment(ctx, tx, name, email, id); err != nil {
			return err
		}
		establishment, err := existing.WithName(name)
		if err != nil {
			return err
		}
		if establishment, err = establishment.WithEmail(email); err != nil {
			return err
		}
		if establishment, err = establishment.WithStatus(status); err != nil {
			return err
		}
		if err := tx.UpdateEstablishment(ctx, establishment); err != nil {
			return err
		}
		updated = establishment
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Updated, id)
	return updated, nil
}

func (s *EstablishmentService) PatchEstablishment(ctx context.Context, id ids.EstablishmentID, patch models.EstablishmentPatch) (*models.Establishment, error) {
	ctx, span := s.start(ctx, "Patch", id)
	defer span.End()

	var (
		result   *models.Establishment
		modified bool
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishment(ctx, id)
		if err != nil {
			return missing(err, "Establishment", id)
		}

		name, email, status := existing.Name, existing.Email, existing.Status
		var nameErr, emailErr, statusErr error
		if changed(patch.Name, name.Name()) {
			name, nameErr = vo.NewEstablishmentName(*patch.Name)
			modified = true
		}
		if changed(patch.Email, email.Email()) {
			email, emailErr = vo.NewEmailAddress(*patch.Email)
			modified = true
		}
		if changed(patch.StatusID, status.ID) {
			status, statusErr = vo.EstablishmentStatusFromID(*patch.StatusID)
			modified = true
		}
		if err := guard.Aggregate(nameErr, emailErr, statusErr); err != nil {
			return err
		}

		result = existing
		if !modified {
			return nil
		}
		if err := ensureUniqueEstablishment(ctx, tx, name, email, id); err != nil {
			return err
		}
		establishment, err := existing.WithName(name)
		if err != nil {
			return err
		}
		if establishment, err = establishment.WithEmail(email); err != nil {
			return err
		}
		if establishment, err = establishment.WithStatus(status); err != nil {
			return err
		}
		result = establishment
		return tx.UpdateEstablishment(ctx, establishment)
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if modified {
		s.publish(events.Updated, id)
	}
	return result, nil
}

// DeleteEstablishment removes an establishment that nothing references.
func (s *EstablishmentService) DeleteEstablishment(ctx context.Context, id ids.EstablishmentID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetEstablishment(ctx, id); err != nil {
			return missing(err, "Establishment", id)
		}
		inUse, err := tx.EstablishmentInUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return e.Conflictf("EstablishmentInUse",
				"Establishment with ID '%s' still has employees, addresses, contacts, phones or members.", id)
		}
		return tx.DeleteEstablishment(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

func ensureUniqueEstablishment(
	ctx context.Context,
	tx *db.Repository,
	name vo.EstablishmentName,
	email vo.EmailAddress,
	excludeID ids.EstablishmentID,
) error {
	taken, err := tx.EstablishmentExistsWithNameAndEmail(ctx, name, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicateEstablishment",
			"An establishment named '%s' with email '%s' already exists.", name, email)
	}
	return nil
}
