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

type EstablishmentAddressRepository interface {
	Transactor
	GetEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) (*models.EstablishmentAddress, error)
	ListEstablishmentAddresses(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentAddress, error)
	CountEstablishmentAddresses(ctx context.Context, spec db.ListSpec) (int64, error)
}

// EstablishmentAddressService manages establishment addresses. Two
// addresses of one establishment never share coordinates.
type EstablishmentAddressService struct {
	service
	repo EstablishmentAddressRepository
}

func NewEstablishmentAddressService(repo EstablishmentAddressRepository, producer EventProducer, logger *zap.Logger) *EstablishmentAddressService {
	return &EstablishmentAddressService{
		service: newService(events.EntityEstablishmentAddress, producer, logger),
		repo:    repo,
	}
}

func (s *EstablishmentAddressService) GetEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) (*models.EstablishmentAddress, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	address, err := s.repo.GetEstablishmentAddress(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "EstablishmentAddress", id))
	}
	return address, nil
}

func (s *EstablishmentAddressService) ListEstablishmentAddresses(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentAddress, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	addresses, err := s.repo.ListEstablishmentAddresses(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return addresses, nil
}

func (s *EstablishmentAddressService) CountEstablishmentAddresses(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEstablishmentAddresses(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *EstablishmentAddressService) CreateEstablishmentAddress(ctx context.Context, in models.EstablishmentAddressInput) (*models.EstablishmentAddress, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	establishmentID, idErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	address, addressErr := vo.NewAddress(in.Parts())
	if err := guard.Aggregate(idErr, addressErr); err != nil {
		return nil, s.fail(span, err)
	}

	var (
		created *models.EstablishmentAddress
		demoted []ids.EstablishmentAddressID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, tx, establishmentID, address, ids.Empty[ids.EstablishmentAddress]()); err != nil {
			return err
		}
		row, err := models.CreateEstablishmentAddress(establishmentID, address, in.IsPrimary)
		if err != nil {
			return err
		}
		if row.IsPrimary {
			if demoted, err = tx.SetNonPrimaryEstablishmentAddresses(ctx, establishmentID, ids.Empty[ids.EstablishmentAddress]()); err != nil {
				return err
			}
		}
		if err := tx.CreateEstablishmentAddress(ctx, row); err != nil {
			return err
		}
		created = row
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	publishDemoted(s.service, demoted)
	return created, nil
}

func (s *EstablishmentAddressService) UpdateEstablishmentAddress(
	ctx context.Context,
	id ids.EstablishmentAddressID,
	in models.EstablishmentAddressInput,
) (*models.EstablishmentAddress, error) {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	establishmentID, idErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	address, addressErr := vo.NewAddress(in.Parts())
	if err := guard.Aggregate(idErr, addressErr); err != nil {
		return nil, s.fail(span, err)
	}

	var (
		updated *models.EstablishmentAddress
		demoted []ids.EstablishmentAddressID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		existing, err := tx.GetEstablishmentAddress(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentAddress", id)
		}
		if err := sameEstablishment("address", establishmentID, existing.EstablishmentID); err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, tx, establishmentID, address, id); err != nil {
			return err
		}
		row, err := existing.WithAddress(address)
		if err != nil {
			return err
		}
		if row, demoted, err = s.promote(ctx, tx, row, in.IsPrimary && !existing.IsPrimary); err != nil {
			return err
		}
		if err := tx.UpdateEstablishmentAddress(ctx, row); err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Updated, id)
	publishDemoted(s.service, demoted)
	return updated, nil
}

// PatchEstablishmentAddress overlays the supplied fields on the stored
// address and revalidates the result as a whole.
func (s *EstablishmentAddressService) PatchEstablishmentAddress(
	ctx context.Context,
	id ids.EstablishmentAddressID,
	patch models.EstablishmentAddressPatch,
) (*models.EstablishmentAddress, error) {
	ctx, span := s.start(ctx, "Patch", id)
	defer span.End()

	var (
		result   *models.EstablishmentAddress
		modified bool
		demoted  []ids.EstablishmentAddressID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentAddress(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentAddress", id)
		}
		row := existing

		current := existing.Address.Parts()
		if next := patch.ApplyTo(current); next != current {
			address, err := vo.NewAddress(next)
			if err != nil {
				return err
			}
			if err := s.ensureUnique(ctx, tx, existing.EstablishmentID, address, id); err != nil {
				return err
			}
			if row, err = row.WithAddress(address); err != nil {
				return err
			}
			modified = true
		}
		if patch.IsPrimary != nil && *patch.IsPrimary != existing.IsPrimary {
			if *patch.IsPrimary {
				row, demoted, err = s.promote(ctx, tx, row, true)
			} else {
				row, err = row.WithPrimaryFlag(false)
			}
			if err != nil {
				return err
			}
			modified = true
		}

		result = row
		if !modified {
			return nil
		}
		return tx.UpdateEstablishmentAddress(ctx, row)
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

// DeleteEstablishmentAddress removes a non-primary address.
func (s *EstablishmentAddressService) DeleteEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentAddress(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentAddress", id)
		}
		if existing.IsPrimary {
			return deletePrimaryNotAllowed("address", existing.EstablishmentID)
		}
		return tx.DeleteEstablishmentAddress(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

func (s *EstablishmentAddressService) ensureUnique(
	ctx context.Context,
	tx *db.Repository,
	establishmentID ids.EstablishmentID,
	address vo.Address,
	excludeID ids.EstablishmentAddressID,
) error {
	taken, err := tx.EstablishmentAddressExists(ctx, establishmentID, address.Latitude(), address.Longitude(), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicateCoordinates",
			"An address with the same latitude (%g) and longitude (%g) already exists for this establishment.",
			address.Latitude(), address.Longitude())
	}
	return nil
}

func (s *EstablishmentAddressService) promote(
	ctx context.Context,
	tx *db.Repository,
	row *models.EstablishmentAddress,
	ok bool,
) (*models.EstablishmentAddress, []ids.EstablishmentAddressID, error) {
	if !ok {
		return row, nil, nil
	}
	demoted, err := tx.SetNonPrimaryEstablishmentAddresses(ctx, row.EstablishmentID, row.ID)
	if err != nil {
		return nil, nil, err
	}
	promoted, err := row.WithPrimaryFlag(true)
	return promoted, demoted, err
}
