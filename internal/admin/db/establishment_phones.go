package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var phoneColumns = columns{
	"id":                   "id",
	"establishmentphoneid": "id",
	"establishmentid":      "establishment_id",
	"phonenumber":          "phone_number",
	"isprimary":            "is_primary",
}

func phoneToRow(p *models.EstablishmentPhone) *dbmodels.EstablishmentPhone {
	return &dbmodels.EstablishmentPhone{
		ID:              p.ID.UUID(),
		EstablishmentID: p.EstablishmentID.UUID(),
		PhoneNumber:     p.PhoneNumber.PhoneNo(),
		IsPrimary:       p.IsPrimary,
	}
}

func phoneFromRow(row *dbmodels.EstablishmentPhone) (*models.EstablishmentPhone, error) {
	id := ids.FromUUID[ids.EstablishmentPhone](row.ID)
	number, err := vo.NewPhoneNumber(row.PhoneNumber)
	if err != nil {
		return nil, corrupt("establishment phone", id, err)
	}
	return &models.EstablishmentPhone{
		ID:              id,
		EstablishmentID: ids.FromUUID[ids.Establishment](row.EstablishmentID),
		PhoneNumber:     number,
		IsPrimary:       row.IsPrimary,
	}, nil
}

func (r *Repository) CreateEstablishmentPhone(ctx context.Context, phone *models.EstablishmentPhone) error {
	if err := r.db.WithContext(ctx).Create(phoneToRow(phone)).Error; err != nil {
		return translate(err, "create establishment phone")
	}
	return nil
}

func (r *Repository) GetEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) (*models.EstablishmentPhone, error) {
	row, err := getRow[dbmodels.EstablishmentPhone](ctx, r.db, id, "establishment phone")
	if err != nil {
		return nil, err
	}
	return phoneFromRow(row)
}

func (r *Repository) UpdateEstablishmentPhone(ctx context.Context, phone *models.EstablishmentPhone) error {
	return saveRow(ctx, r.db, phoneToRow(phone), phone.ID, "establishment phone")
}

func (r *Repository) DeleteEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) error {
	return deleteRow[dbmodels.EstablishmentPhone](ctx, r.db, id, "establishment phone")
}

func (r *Repository) ListEstablishmentPhones(ctx context.Context, spec ListSpec) ([]*models.EstablishmentPhone, error) {
	var rows []dbmodels.EstablishmentPhone
	err := r.db.WithContext(ctx).
		Scopes(phoneColumns.filter(spec), phoneColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list establishment phones")
	}
	out := make([]*models.EstablishmentPhone, 0, len(rows))
	for i := range rows {
		p, err := phoneFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repository) CountEstablishmentPhones(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.EstablishmentPhone{}).
		Scopes(phoneColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count establishment phones")
}

// EstablishmentPhoneExists reports whether the establishment already has
// number on a phone other than excludeID.
func (r *Repository) EstablishmentPhoneExists(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	number vo.PhoneNumber,
	excludeID ids.EstablishmentPhoneID,
) (bool, error) {
	found, err := exists[dbmodels.EstablishmentPhone](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		q = q.Where("establishment_id = ? AND phone_number = ?", establishmentID.UUID(), number.PhoneNo())
		return excluding(q, excludeID)
	})
	return found, translate(err, "check establishment phone")
}

// SetNonPrimaryEstablishmentPhones clears the primary flag on every phone of
// the establishment except excludeID and returns the phones it demoted.
func (r *Repository) SetNonPrimaryEstablishmentPhones(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	excludeID ids.EstablishmentPhoneID,
) ([]ids.EstablishmentPhoneID, error) {
	return setNonPrimary[dbmodels.EstablishmentPhone](ctx, r.db, establishmentID, excludeID)
}

// excluding skips the row with id unless id is empty.
func excluding[K any](q *gorm.DB, id ids.ID[K]) *gorm.DB {
	if id.IsEmpty() {
		return q
	}
	return q.Where("id <> ?", id.UUID())
}

// setNonPrimary flips the primary rows of one establishment to non-primary
// and returns the ids it selected for demotion.
func setNonPrimary[R any, K any](
	ctx context.Context,
	db *gorm.DB,
	establishmentID ids.EstablishmentID,
	excludeID ids.ID[K],
) ([]ids.ID[K], error) {
	primaries := func() *gorm.DB {
		q := db.WithContext(ctx).Model(new(R)).
			Where("establishment_id = ? AND is_primary = ?", establishmentID.UUID(), true)
		return excluding(q, excludeID)
	}

	var found []uuid.UUID
	if err := primaries().Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("find primary rows of establishment %s: %w", establishmentID, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	if err := primaries().Update("is_primary", false).Error; err != nil {
		return nil, fmt.Errorf("clear primary flag for establishment %s: %w", establishmentID, err)
	}

	demoted := make([]ids.ID[K], 0, len(found))
	for _, id := range found {
		demoted = append(demoted, ids.FromUUID[K](id))
	}
	return demoted, nil
}
