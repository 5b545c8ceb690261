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

type EstablishmentContactRepository interface {
	Transactor
	GetEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) (*models.EstablishmentContact, error)
	ListEstablishmentContacts(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentContact, error)
	CountEstablishmentContacts(ctx context.Context, spec db.ListSpec) (int64, error)
}

type EstablishmentContactService struct {
	service
	repo EstablishmentContactRepository
}

func NewEstablishmentContactService(repo EstablishmentContactRepository, producer EventProducer, logger *zap.Logger) *EstablishmentContactService {
	return &EstablishmentContactService{
		service: newService(events.EntityEstablishmentContact, producer, logger),
		repo:    repo,
	}
}

func (s *EstablishmentContactService) GetEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) (*models.EstablishmentContact, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	contact, err := s.repo.GetEstablishmentContact(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "EstablishmentContact", id))
	}
	return contact, nil
}

func (s *EstablishmentContactService) ListEstablishmentContacts(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentContact, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	contacts, err := s.repo.ListEstablishmentContacts(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return contacts, nil
}

func (s *EstablishmentContactService) CountEstablishmentContacts(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountEstablishmentContacts(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *EstablishmentContactService) CreateEstablishmentContact(ctx context.Context, in models.EstablishmentContactInput) (*models.EstablishmentContact, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	establishmentID, idErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	person, personErr := vo.NewPersonName(in.ContactPersonFirstName, in.ContactPersonMiddleName, in.ContactPersonLastName)
	phone, phoneErr := vo.NewPhoneNumber(in.ContactPhoneNumber)
	if err := guard.Aggregate(idErr, personErr, phoneErr); err != nil {
		return nil, s.fail(span, err)
	}

	var (
		created *models.EstablishmentContact
		demoted []ids.EstablishmentContactID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, tx, establishmentID, person, phone, ids.Empty[ids.EstablishmentContact]()); err != nil {
			return err
		}
		contact, err := models.CreateEstablishmentContact(establishmentID, person, phone, in.IsPrimary)
		if err != nil {
			return err
		}
		if contact.IsPrimary {
			if demoted, err = tx.SetNonPrimaryEstablishmentContacts(ctx, establishmentID, ids.Empty[ids.EstablishmentContact]()); err != nil {
				return err
			}
		}
		if err := tx.CreateEstablishmentContact(ctx, contact); err != nil {
			return err
		}
		created = contact
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	publishDemoted(s.service, demoted)
	return created, nil
}

func (s *EstablishmentContactService) UpdateEstablishmentContact(
	ctx context.Context,
	id ids.EstablishmentContactID,
	in models.EstablishmentContactInput,
) (*models.EstablishmentContact, error) {
	ctx, span := s.start(ctx, "Update", id)
	defer span.End()

	establishmentID, idErr := ids.Parse[ids.Establishment](in.EstablishmentID)
	person, personErr := vo.NewPersonName(in.ContactPersonFirstName, in.ContactPersonMiddleName, in.ContactPersonLastName)
	phone, phoneErr := vo.NewPhoneNumber(in.ContactPhoneNumber)
	if err := guard.Aggregate(idErr, personErr, phoneErr); err != nil {
		return nil, s.fail(span, err)
	}

	var (
		updated *models.EstablishmentContact
		demoted []ids.EstablishmentContactID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := requireEstablishment(ctx, tx, establishmentID); err != nil {
			return err
		}
		existing, err := tx.GetEstablishmentContact(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentContact", id)
		}
		if err := sameEstablishment("contact", establishmentID, existing.EstablishmentID); err != nil {
			return err
		}
		if err := s.ensureUnique(ctx, tx, establishmentID, person, phone, id); err != nil {
			return err
		}
		contact, err := existing.WithContactPerson(person)
		if err != nil {
			return err
		}
		if contact, err = contact.WithContactPhone(phone); err != nil {
			return err
		}
		if contact, demoted, err = s.promote(ctx, tx, contact, in.IsPrimary && !existing.IsPrimary); err != nil {
			return err
		}
		if err := tx.UpdateEstablishmentContact(ctx, contact); err != nil {
			return err
		}
		updated = contact
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Updated, id)
	publishDemoted(s.service, demoted)
	return updated, nil
}

// PatchEstablishmentContact applies the supplied name parts, phone and
// primary flag. Name parts not supplied keep their stored values.
func (s *EstablishmentContactService) PatchEstablishmentContact(
	ctx context.Context,
	id ids.EstablishmentContactID,
	patch models.EstablishmentContactPatch,
) (*models.EstablishmentContact, error) {
	ctx, span := s.start(ctx, "Patch", id)
	defer span.End()

	var (
		result   *models.EstablishmentContact
		modified bool
		demoted  []ids.EstablishmentContactID
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentContact(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentContact", id)
		}

		first, middle, last := existing.ContactPerson.FirstName(), existing.ContactPerson.MiddleName(), existing.ContactPerson.LastName()
		nameChanged := changed(patch.ContactPersonFirstName, first) ||
			changed(patch.ContactPersonMiddleName, middle) ||
			changed(patch.ContactPersonLastName, last)
		phoneChanged := changed(patch.ContactPhoneNumber, existing.ContactPhone.PhoneNo())

		person, phone := existing.ContactPerson, existing.ContactPhone
		var personErr, phoneErr error
		if nameChanged {
			person, personErr = vo.NewPersonName(
				valueOr(patch.ContactPersonFirstName, first),
				valueOr(patch.ContactPersonMiddleName, middle),
				valueOr(patch.ContactPersonLastName, last))
		}
		if phoneChanged {
			phone, phoneErr = vo.NewPhoneNumber(*patch.ContactPhoneNumber)
		}
		if err := guard.Aggregate(personErr, phoneErr); err != nil {
			return err
		}

		contact := existing
		if nameChanged || phoneChanged {
			if err := s.ensureUnique(ctx, tx, existing.EstablishmentID, person, phone, id); err != nil {
				return err
			}
			if contact, err = contact.WithContactPerson(person); err != nil {
				return err
			}
			if contact, err = contact.WithContactPhone(phone); err != nil {
				return err
			}
			modified = true
		}
		if patch.IsPrimary != nil && *patch.IsPrimary != existing.IsPrimary {
			if *patch.IsPrimary {
				contact, demoted, err = s.promote(ctx, tx, contact, true)
			} else {
				contact, err = contact.WithPrimaryFlag(false)
			}
			if err != nil {
				return err
			}
			modified = true
		}

		result = contact
		if !modified {
			return nil
		}
		return tx.UpdateEstablishmentContact(ctx, contact)
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

// DeleteEstablishmentContact removes a non-primary contact.
func (s *EstablishmentContactService) DeleteEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetEstablishmentContact(ctx, id)
		if err != nil {
			return missing(err, "EstablishmentContact", id)
		}
		if existing.IsPrimary {
			return deletePrimaryNotAllowed("contact", existing.EstablishmentID)
		}
		return tx.DeleteEstablishmentContact(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

func (s *EstablishmentContactService) ensureUnique(
	ctx context.Context,
	tx *db.Repository,
	establishmentID ids.EstablishmentID,
	person vo.PersonName,
	phone vo.PhoneNumber,
	excludeID ids.EstablishmentContactID,
) error {
	taken, err := tx.EstablishmentContactExists(ctx, establishmentID, person, phone, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicateContact", "A contact with the same name and phone number already exists for this establishment.")
	}
	return nil
}

func (s *EstablishmentContactService) promote(
	ctx context.Context,
	tx *db.Repository,
	contact *models.EstablishmentContact,
	ok bool,
) (*models.EstablishmentContact, []ids.EstablishmentContactID, error) {
	if !ok {
		return contact, nil, nil
	}
	demoted, err := tx.SetNonPrimaryEstablishmentContacts(ctx, contact.EstablishmentID, contact.ID)
	if err != nil {
		return nil, nil, err
	}
	promoted, err := contact.WithPrimaryFlag(true)
	return promoted, demoted, err
}
