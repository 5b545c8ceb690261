package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var addressColumns = columns{
	"id":                     "id",
	"establishmentaddressid": "id",
	"establishmentid":        "establishment_id",
	"addressline":            "address_line",
	"city":                   "city",
	"municipality":           "municipality",
	"province":               "province",
	"region":                 "region",
	"country":                "country",
	"latitude":               "latitude",
	"longitude":              "longitude",
	"isprimary":              "is_primary",
}

func addressToRow(a *models.EstablishmentAddress) *dbmodels.EstablishmentAddress {
	return &dbmodels.EstablishmentAddress{
		ID:              a.ID.UUID(),
		EstablishmentID: a.EstablishmentID.UUID(),
		AddressLine:     a.Address.AddressLine(),
		City:            a.Address.City(),
		Municipality:    a.Address.Municipality(),
		Province:        a.Address.Province(),
		Region:          a.Address.Region(),
		Country:         a.Address.Country(),
		Latitude:        a.Address.Latitude(),
		Longitude:       a.Address.Longitude(),
		IsPrimary:       a.IsPrimary,
	}
}

func addressFromRow(row *dbmodels.EstablishmentAddress) (*models.EstablishmentAddress, error) {
	id := ids.FromUUID[ids.EstablishmentAddress](row.ID)
	address, err := vo.NewAddress(vo.AddressParts{
		AddressLine:  row.AddressLine,
		City:         row.City,
		Municipality: row.Municipality,
		Province:     row.Province,
		Region:       row.Region,
		Country:      row.Country,
		Latitude:     row.Latitude,
		Longitude:    row.Longitude,
	})
	if err != nil {
		return nil, corrupt("establishment address", id, err)
	}
	return &models.EstablishmentAddress{
		ID:              id,
		EstablishmentID: ids.FromUUID[ids.Establishment](row.EstablishmentID),
		Address:         address,
		IsPrimary:       row.IsPrimary,
	}, nil
}

func (r *Repository) CreateEstablishmentAddress(ctx context.Context, address *models.EstablishmentAddress) error {
	if err := r.db.WithContext(ctx).Create(addressToRow(address)).Error; err != nil {
		return translate(err, "create establishment address")
	}
	return nil
}

func (r *Repository) GetEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) (*models.EstablishmentAddress, error) {
	row, err := getRow[dbmodels.EstablishmentAddress](ctx, r.db, id, "establishment address")
	if err != nil {
		return nil, err
	}
	return addressFromRow(row)
}

func (r *Repository) UpdateEstablishmentAddress(ctx context.Context, address *models.EstablishmentAddress) error {
	return saveRow(ctx, r.db, addressToRow(address), address.ID, "establishment address")
}

func (r *Repository) DeleteEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) error {
	return deleteRow[dbmodels.EstablishmentAddress](ctx, r.db, id, "establishment address")
}

func (r *Repository) ListEstablishmentAddresses(ctx context.Context, spec ListSpec) ([]*models.EstablishmentAddress, error) {
	var rows []dbmodels.EstablishmentAddress
	err := r.db.WithContext(ctx).
		Scopes(addressColumns.filter(spec), addressColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list establishment addresses")
	}
	out := make([]*models.EstablishmentAddress, 0, len(rows))
	for i := range rows {
		a, err := addressFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *Repository) CountEstablishmentAddresses(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.EstablishmentAddress{}).
		Scopes(addressColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count establishment addresses")
}

// EstablishmentAddressExists reports whether the establishment already has
// an address at latitude/longitude other than excludeID.
func (r *Repository) EstablishmentAddressExists(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	latitude, longitude float64,
	excludeID ids.EstablishmentAddressID,
) (bool, error) {
	found, err := exists[dbmodels.EstablishmentAddress](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		q = q.Where("establishment_id = ? AND latitude = ? AND longitude = ?", establishmentID.UUID(), latitude, longitude)
		return excluding(q, excludeID)
	})
	return found, translate(err, "check establishment address")
}

// SetNonPrimaryEstablishmentAddresses clears the primary flag on every
// address of the establishment except excludeID and returns the addresses it
// demoted.
func (r *Repository) SetNonPrimaryEstablishmentAddresses(
	ctx context.Context,
	establishmentID ids.EstablishmentID,
	excludeID ids.EstablishmentAddressID,
) ([]ids.EstablishmentAddressID, error) {
	return setNonPrimary[dbmodels.EstablishmentAddress](ctx, r.db, establishmentID, excludeID)
}
