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

type EstablishmentPhoneRepository interface {
	Transactor
	GetEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) (*models.EstablishmentPhone, error)
	ListEstablishmentPhones(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentPhone, error)
	CountEstablishmentPhones(ctx context.Context, spec db.ListSpec) (int64, error)
}

// EstablishmentPhoneService manages the phone lines of establishments and
// keeps at most one of them primary.
type EstablishmentPhoneService struct {
	service
	repo EstablishmentPhoneRepository
}

func NewEstablishmentPhoneService(repo EstablishmentPhoneRepository, producer EventProducer, logger *zap.Logger) *EstablishmentPhoneService {
	return &EstablishmentPhoneService{
		service: newService(events.EntityEstablishmentPhone, producer, logger),
		repo:    repo,
	}
}

func (s *EstablishmentPhoneService) GetEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) (*models.EstablishmentPhone, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	phone, err := s.repo.GetEstablishmentPhone(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "EstablishmentPhone", id))
	}
	return phone, nil
}

func (s *EstablishmentPhoneService) ListEstablishmentPhones(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentPhone, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	phones, err := s.repo.ListEstablishmentPhones(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return phones, nil
}

func (s *EstablishmentPhoneService) CountEstablishmentPhones(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEstablishmentPhones(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

// CreateEstablishmentPhone adds a phone to an existing establishment. A new
// primary phone demotes the current one.
func (s *EstablishmentPhoneService) CreateEstablishmentPhone(ctx context.Context, in models.EstablishmentPhoneInput) (*models.EstablishmentPhone, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	establishmentID, idErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	number, numberErr := vo.NewPhoneNumber(in.PhoneNumber)
	if err := guard.Aggregate(idErr, numberErr); err != nil {
		return nil, s.fail(span, err)
	}

	var (
		created *models.EstablishmentPhone
		demoted []ids.EstablishmentPhoneID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, tx, establishmentID, number, ids.Empty[ids.EstablishmentPhone]()); err != nil {
			return err
		}
		phone, err := models.CreateEstablishmentPhone(establishmentID, number, in.IsPrimary)
		if err != nil {
			return err
		}
		if phone.IsPrimary {
			if demoted, err = tx.SetNonPrimaryEstablishmentPhones(ctx, establishmentID, ids.Empty[ids.EstablishmentPhone]()); err != nil {
				return err
			}
		}
		if err := tx.CreateEstablishmentPhone(ctx, phone); err != nil {
			return err
		}
		created = phone
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	publishDemoted(s.service, demoted)
	return created, nil
}

// UpdateEstablishmentPhone replaces the number of a phone and, when asked,
// promotes it to primary.
func (s *EstablishmentPhoneService) UpdateEstablishmentPhone(
	ctx context.Context,
	id ids.EstablishmentPhoneID,
	in models.EstablishmentPhoneInput,
) (*models.EstablishmentPhone, error) {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	establishmentID, idErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	number, numberErr := vo.NewPhoneNumber(in.PhoneNumber)
	if err := guard.Aggregate(idErr, numberErr); err != nil {
		return nil, s.fail(span, err)
	}

	var (
		updated *models.EstablishmentPhone
		demoted []ids.EstablishmentPhoneID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		existing, err := tx.GetEstablishmentPhone(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentPhone", id)
		}
		if err := sameEstablishment("phone", establishmentID, existing.EstablishmentID); err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, tx, establishmentID, number, id); err != nil {
			return err
		}
		phone, err := existing.WithPhoneNumber(number)
		if err != nil {
			return err
		}
		if phone, demoted, err = s.promote(ctx, tx, phone, in.IsPrimary && !existing.IsPrimary); err != nil {
			return err
		}
		if err := tx.UpdateEstablishmentPhone(ctx, phone); err != nil {
			return err
		}
		updated = phone
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Updated, id)
	publishDemoted(s.service, demoted)
	return updated, nil
}

// PatchEstablishmentPhone applies the supplied fields only. An unchanged
// phone is returned as stored without a write.
func (s *EstablishmentPhoneService) PatchEstablishmentPhone(
	ctx context.Context,
	id ids.EstablishmentPhoneID,
	patch models.EstablishmentPhonePatch,
) (*models.EstablishmentPhone, error) {
	ctx, span := s.start(ctx, "Patch", id)
	defer span.End()

	var (
		result   *models.EstablishmentPhone
		modified bool
		demoted  []ids.EstablishmentPhoneID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentPhone(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentPhone", id)
		}
		phone := existing

		if patch.PhoneNumber != nil && *patch.PhoneNumber != "" && changed(patch.PhoneNumber, existing.PhoneNumber.PhoneNo()) {
			number, err := vo.NewPhoneNumber(*patch.PhoneNumber)
			if err != nil {
				return err
			}
			if err := s.ensureUnique(ctx, tx, existing.EstablishmentID, number, id); err != nil {
				return err
			}
			if phone, err = phone.WithPhoneNumber(number); err != nil {
				return err
			}
			modified = true
		}
		if patch.IsPrimary != nil && *patch.IsPrimary != existing.IsPrimary {
			if *patch.IsPrimary {
				phone, demoted, err = s.promote(ctx, tx, phone, true)
			} else {
				phone, err = phone.WithPrimaryFlag(false)
			}
			if err != nil {
				return err
			}
			modified = true
		}

		result = phone
		if !modified {
			return nil
		}
		return tx.UpdateEstablishmentPhone(ctx, phone)
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if modified {
		s.publish(events.Updated, id)
		publishDemoted(s.service, demoted)
	}
	return result, nil
}

// DeleteEstablishmentPhone removes a non-primary phone.
func (s *EstablishmentPhoneService) DeleteEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentPhone(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentPhone", id)
		}
		if existing.IsPrimary {
			return deletePrimaryNotAllowed("phone", existing.EstablishmentID)
		}
		return tx.DeleteEstablishmentPhone(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

func (s *EstablishmentPhoneService) ensureUnique(
	ctx context.Context,
	tx *db.Repository,
	establishmentID ids.EstablishmentID,
	number vo.PhoneNumber,
	excludeID ids.EstablishmentPhoneID,
) error {
	taken, err := tx.EstablishmentPhoneExists(ctx, establishmentID, number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicatePhoneNumber", "Phone number '%s' already exists for this establishment.", number)
	}
	return nil
}

// promote demotes the sibling phones and marks phone primary when ok.
func (s *EstablishmentPhoneService) promote(
	ctx context.Context,
	tx *db.Repository,
	phone *models.EstablishmentPhone,
	ok bool,
) (*models.EstablishmentPhone, []ids.EstablishmentPhoneID, error) {
	if !ok {
		return phone, nil, nil
	}
	demoted, err := tx.SetNonPrimaryEstablishmentPhones(ctx, phone.EstablishmentID, phone.ID)
	if err != nil {
		return nil, nil, err
	}
	promoted, err := phone.WithPrimaryFlag(true)
	return promoted, demoted, err
}
