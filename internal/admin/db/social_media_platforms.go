package db

import (
	"context"

	"gorm.io/gorm"

	dbmodels "github.com/testnest/admin/internal/admin/db/models"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

var platformColumns = columns{
	"id":            "id",
	"socialmediaid": "id",
	"name":          "name",
	"platformurl":   "platform_url",
}

func platformFromRow(row *dbmodels.SocialMediaPlatform) (*models.SocialMediaPlatform, error) {
	id := ids.FromUUID[ids.SocialMedia](row.ID)
	name, err := vo.NewSocialMediaName(row.Name, row.PlatformURL)
	if err != nil {
		return nil, corrupt("social media platform", id, err)
	}
	return &models.SocialMediaPlatform{ID: id, Name: name}, nil
}

func platformToRow(x *models.SocialMediaPlatform) *dbmodels.SocialMediaPlatform {
	return &dbmodels.SocialMediaPlatform{
		ID:          x.ID.UUID(),
		Name:        x.Name.Name(),
		PlatformURL: x.Name.PlatformURL(),
	}
}

func (r *Repository) CreateSocialMediaPlatform(ctx context.Context, platform *models.SocialMediaPlatform) error {
	if err := r.db.WithContext(ctx).Create(platformToRow(platform)).Error; err != nil {
		return translate(err, "create social media platform")
	}
	return nil
}

func (r *Repository) GetSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) (*models.SocialMediaPlatform, error) {
	row, err := getRow[dbmodels.SocialMediaPlatform](ctx, r.db, id, "social media platform")
	if err != nil {
		return nil, err
	}
	return platformFromRow(row)
}

func (r *Repository) UpdateSocialMediaPlatform(ctx context.Context, platform *models.SocialMediaPlatform) error {
	return saveRow(ctx, r.db, platformToRow(platform), platform.ID, "social media platform")
}

func (r *Repository) DeleteSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) error {
	return deleteRow[dbmodels.SocialMediaPlatform](ctx, r.db, id, "social media platform")
}

func (r *Repository) ListSocialMediaPlatforms(ctx context.Context, spec ListSpec) ([]*models.SocialMediaPlatform, error) {
	var rows []dbmodels.SocialMediaPlatform
	err := r.db.WithContext(ctx).
		Scopes(platformColumns.filter(spec), platformColumns.page(spec)).
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "list social media platforms")
	}
	out := make([]*models.SocialMediaPlatform, 0, len(rows))
	for i := range rows {
		x, err := platformFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (r *Repository) CountSocialMediaPlatforms(ctx context.Context, spec ListSpec) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&dbmodels.SocialMediaPlatform{}).
		Scopes(platformColumns.filter(spec)).
		Count(&count).Error
	return count, translate(err, "count social media platforms")
}

// SocialMediaNameExists reports whether a platform other than excludeID is
// already called name.
func (r *Repository) SocialMediaNameExists(ctx context.Context, name string, excludeID ids.SocialMediaID) (bool, error) {
	found, err := exists[dbmodels.SocialMediaPlatform](ctx, r.db, func(q *gorm.DB) *gorm.DB {
		return excluding(q.Where("name = ?", name), excludeID)
	})
	return found, translate(err, "check social media name")
}
