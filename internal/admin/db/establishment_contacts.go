package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var contactColumns = columns{
	"id":                      "id",
	"establishmentcontactid":  "id",
	"establishmentid":         "establishment_id",
	"contactpersonfirstname":  "contact_person_first_name",
	"contactpersonmiddlename": "contact_person_middle_name",
	"contactpersonlastname":   "contact_person_last_name",
	"contactphonenumber":      "contact_phone_number",
	"isprimary":               "is_primary",
}

func contactToRow(c *models.EstablishmentContact) *dbmodels.EstablishmentContact {
	return &dbmodels.EstablishmentContact{
		ID:                      c.ID.UUID(),
		EstablishmentID:         c.EstablishmentID.UUID(),
		ContactPersonFirstName:  c.ContactPerson.FirstName(),
		ContactPersonMiddleName: c.ContactPerson.MiddleName(),
		ContactPersonLastName:   c.ContactPerson.LastName(),
		ContactPhoneNumber:      c.ContactPhone.PhoneNo(),
		IsPrimary:               c.IsPrimary,
	}
}

func contactFromRow(row *dbmodels.EstablishmentContact) (*models.EstablishmentContact, error) {
	id := ids.FromUUID[ids.EstablishmentContact](row.ID)
	person, err := vo.NewPersonName(row.ContactPersonFirstName, row.ContactPersonMiddleName, row.ContactPersonLastName)
	if err != nil {
		return nil, corrupt("establishment contact", id, err)
	}
	phone, err := vo.NewPhoneNumber(row.ContactPhoneNumber)
	if err != nil {
		return nil, corrupt("establishment contact", id, err)
	}
	return &models.EstablishmentContact{
		ID:              id,
		EstablishmentID: ids.FromUUID[ids.Establishment](row.EstablishmentID),
		ContactPerson:   person,
		ContactPhone:    phone,
		IsPrimary:       row.IsPrimary,
	}, nil
}

func (r *Repository) CreateEstablishmentContact(ctx context.Context, contact *models.EstablishmentContact) error {
	if err := r.db.WithContext(ctx).Create(contactToRow(contact)).Error; err != nil {
		return translate(err, "create establishment contact")
	}
	return nil
}

func (r *Repository) GetEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) (*models.EstablishmentContact, error) {
	row, err := getRow[dbmodels.EstablishmentContact](ctx, r.db, id, "establishment contact")
	if err != nil {
		return nil, err
	}
	return contactFromRow(row)
}

func (r *Repository) UpdateEstablishmentContact(ctx context.Context, contact *models.EstablishmentContact) error {
	return saveRow(ctx, r.db, contactToRow(contact), contact.ID, "establishment contact")
}

func (r *Repository) DeleteEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) error {
	return deleteRow[dbmodels.EstablishmentContact](ctx, r.db, id, "establishment contact")
}

func (r *Repository) ListEstablishmentContacts(ctx context.Context, spec ListSpec) ([]*models.EstablishmentContact, error) {
	var rows []dbmodels.EstablishmentContact
	err := r.db.WithContext(ctx).
		Scopes(contactColumns.filter(spec), contactColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list establishment contacts")
	}
	out := make([]*models.EstablishmentContact, 0, len(rows))
	for i := range rows {
		c, err := contactFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repository) CountEstablishmentContacts(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.EstablishmentContact{}).
		Scopes(contactColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count establishment contacts")
}

// EstablishmentContactExists reports whether the establishment already has
// a contact with the same name and phone other than excludeID.
func (r *Repository) EstablishmentContactExists(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	person vo.PersonName,
	phone vo.PhoneNumber,
	excludeID ids.EstablishmentContactID,
) (bool, error) {
	found, err := exists[dbmodels.EstablishmentContact](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		q = q.Where("establishment_id = ?", establishmentID.UUID()).
			Where("contact_person_first_name = ? AND contact_person_middle_name = ? AND contact_person_last_name = ?",
				person.FirstName(), person.MiddleName(), person.LastName()).
			Where("contact_phone_number = ?", phone.PhoneNo())
		return excluding(q, excludeID)
	})
	return found, translate(err, "check establishment contact")
}

// SetNonPrimaryEstablishmentContacts clears the primary flag on every
// contact of the establishment except excludeID and returns the contacts it
// demoted.
func (r *Repository) SetNonPrimaryEstablishmentContacts(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	excludeID ids.EstablishmentContactID,
) ([]ids.EstablishmentContactID, error) {
	return setNonPrimary[dbmodels.EstablishmentContact](ctx, r.db, establishmentID, excludeID)
}
