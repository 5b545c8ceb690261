package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var establishmentColumns = columns{
	"id":                    "id",
	"establishmentid":       "id",
	"establishmentname":     "name",
	"establishmentemail":    "email",
	"establishmentstatusid": "status_id",
}

func establishmentToRow(x *models.Establishment) *dbmodels.Establishment {
	return &dbmodels.Establishment{
		ID:       x.ID.UUID(),
		Name:     x.Name.Name(),
		Email:    x.Email.Email(),
		StatusID: x.Status.ID,
	}
}

func establishmentFromRow(row *dbmodels.Establishment) (*models.Establishment, error) {
	id := ids.FromUUID[ids.Establishment](row.ID)
	name, nameErr := vo.NewEstablishmentName(row.Name)
	email, emailErr := vo.NewEmailAddress(row.Email)
	status, statusErr := vo.EstablishmentStatusFromID(row.StatusID)
	for _, err := range []error{nameErr, emailErr, statusErr} {
		if err != nil {
			return nil, corrupt("establishment", id, err)
		}
	}
	return &models.Establishment{ID: id, Name: name, Email: email, Status: status}, nil
}

func (r *Repository) CreateEstablishment(ctx context.Context, establishment *models.Establishment) error {
	if err := r.db.WithContext(ctx).Create(establishmentToRow(establishment)).Error; err != nil {
		return translate(err, "create establishment")
	}
	return nil
}

func (r *Repository) GetEstablishment(ctx context.Context, id ids.EstablishmentID) (*models.Establishment, error) {
	row, err := getRow[dbmodels.Establishment](ctx, r.db, id, "establishment")
	if err != nil {
		return nil, err
	}
	return establishmentFromRow(row)
}

func (r *Repository) UpdateEstablishment(ctx context.Context, establishment *models.Establishment) error {
	return saveRow(ctx, r.db, establishmentToRow(establishment), establishment.ID, "establishment")
}

func (r *Repository) DeleteEstablishment(ctx context.Context, id ids.EstablishmentID) error {
	return deleteRow[dbmodels.Establishment](ctx, r.db, id, "establishment")
}

func (r *Repository) ListEstablishments(ctx context.Context, spec ListSpec) ([]*models.Establishment, error) {
	var rows []dbmodels.Establishment
	err := r.db.WithContext(ctx).
		Scopes(establishmentColumns.filter(spec), establishmentColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list establishments")
	}
	out := make([]*models.Establishment, 0, len(rows))
	for i := range rows {
		x, err := establishmentFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (r *Repository) CountEstablishments(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.Establishment{}).
		Scopes(establishmentColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count establishments")
}

func (r *Repository) EstablishmentExists(ctx context.Context, id ids.EstablishmentID) (bool, error) {
	found, err := exists[dbmodels.Establishment](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return q.Where("id = ?", id.UUID())
	})
	return found, translate(err, "check establishment")
}

// EstablishmentExistsWithNameAndEmail reports whether an establishment
// other than excludeID already uses name and email.
func (r *Repository) EstablishmentExistsWithNameAndEmail(
	ctx context.Context,
	name vo.EstablishmentName,
	email vo.EmailAddress,
	excludeID ids.EstablishmentID,
) (bool, error) {
	found, err := exists[dbmodels.Establishment](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return excluding(q.Where("name = ? AND email = ?", name.Name(), email.Email()), excludeID)
	})
	return found, translate(err, "check establishment")
}

// EstablishmentInUse reports whether any child row references id.
func (r *Repository) EstablishmentInUse(ctx context.Context, id ids.EstablishmentID) (bool, error) {
	byEstablishment := func(q *gorm.DB) *gorm.DB { return q.Where("establishment_id = ?", id.UUID()) }
	checks := []func() (bool, error){
		func() (bool, error) { return exists[dbmodels.Employee](ctx, r.db, byEstablishment) },
		func() (bool, error) { return exists[dbmodels.EstablishmentAddress](ctx, r.db, byEstablishment) },
		func() (bool, error) { return exists[dbmodels.EstablishmentContact](ctx, r.db, byEstablishment) },
		func() (bool, error) { return exists[dbmodels.EstablishmentPhone](ctx, r.db, byEstablishment) },
		func() (bool, error) { return exists[dbmodels.EstablishmentMember](ctx, r.db, byEstablishment) },
	}
	for _, check := range checks {
		found, err := check()
		if err != nil {
			return false, translate(err, "check establishment usage")
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}
