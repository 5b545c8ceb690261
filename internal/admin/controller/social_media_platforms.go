package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/db"
	e "github.com/testnest/admin/internal/admin/errors"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	vo "github.com/testnest/admin/internal/admin/valueobjects"
)

type SocialMediaPlatformRepository interface {
	Transactor
	GetSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) (*models.SocialMediaPlatform, error)
	ListSocialMediaPlatforms(ctx context.Context, spec db.ListSpec) ([]*models.SocialMediaPlatform, error)
	CountSocialMediaPlatforms(ctx context.Context, spec db.ListSpec) (int64, error)
}

type SocialMediaPlatformService struct {
	service
	repo SocialMediaPlatformRepository
}

func NewSocialMediaPlatformService(repo SocialMediaPlatformRepository, producer EventProducer, logger *zap.Logger) *SocialMediaPlatformService {
	return &SocialMediaPlatformService{
		service: newService(events.EntitySocialMediaPlatform, producer, logger),
		repo:    repo,
	}
}

func (s *SocialMediaPlatformService) GetSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) (*models.SocialMediaPlatform, error) {
	ctx, span := s.start(ctx, "Get", id)
	defer span.End()

	platform, err := s.repo.GetSocialMediaPlatform(ctx, id)
	if err != nil {
		return nil, s.fail(span, missing(err, "SocialMediaPlatform", id))
	}
	return platform, nil
}

func (s *SocialMediaPlatformService) ListSocialMediaPlatforms(ctx context.Context, spec db.ListSpec) ([]*models.SocialMediaPlatform, error) {
	ctx, span := s.start(ctx, "List", nil)
	defer span.End()

	list, err := s.repo.ListSocialMediaPlatforms(ctx, spec)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return list, nil
}

func (s *SocialMediaPlatformService) CountSocialMediaPlatforms(ctx context.Context, spec db.ListSpec) (int64, error) {
	ctx, span := s.start(ctx, "Count", nil)
	defer span.End()

	count, err := s.repo.CountSocialMediaPlatforms(ctx, spec)
	if err != nil {
		return 0, s.fail(span, err)
	}
	return count, nil
}

func (s *SocialMediaPlatformService) CreateSocialMediaPlatform(ctx context.Context, in models.SocialMediaPlatformInput) (*models.SocialMediaPlatform, error) {
	ctx, span := s.start(ctx, "Create", nil)
	defer span.End()

	name, err := vo.NewSocialMediaName(in.Name, in.PlatformURL)
	if err != nil {
		return nil, s.fail(span, err)
	}

	var created *models.SocialMediaPlatform
	err = s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if err := ensureUniquePlatformName(ctx, tx, name, ids.Empty[ids.SocialMedia]()); err != nil {
			return err
		}
		platform, err := models.CreateSocialMediaPlatform(name)
		if err != nil {
			return err
		}
		if err := tx.CreateSocialMediaPlatform(ctx, platform); err != nil {
			return err
		}
		created = platform
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	s.publish(events.Created, created.ID)
	return created, nil
}

func (s *SocialMediaPlatformService) UpdateSocialMediaPlatform(
	ctx context.Context,
	id ids.SocialMediaID,
	in models.SocialMediaPlatformInput,
) (*models.SocialMediaPlatform, error) {
	return s.change(ctx, "Update", id, models.SocialMediaPlatformPatch{Name: &in.Name, PlatformURL: &in.PlatformURL})
}

func (s *SocialMediaPlatformService) PatchSocialMediaPlatform(
	ctx context.Context,
	id ids.SocialMediaID,
	patch models.SocialMediaPlatformPatch,
) (*models.SocialMediaPlatform, error) {
	return s.change(ctx, "Patch", id, patch)
}

func (s *SocialMediaPlatformService) change(
	ctx context.Context,
	op string,
	id ids.SocialMediaID,
	patch models.SocialMediaPlatformPatch,
) (*models.SocialMediaPlatform, error) {
	ctx, span := s.start(ctx, op, id)
	defer span.End()

	var (
		result   *models.SocialMediaPlatform
		modified bool
	)
	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		existing, err := tx.GetSocialMediaPlatform(ctx, id)
		if err != nil {
			return missing(err, "SocialMediaPlatform", id)
		}
		result = existing

		current := existing.Name
		if !changed(patch.Name, current.Name()) && !changed(patch.PlatformURL, current.PlatformURL()) {
			return nil
		}
		name, err := current.WithNamePlatform(
			valueOr(patch.Name, current.Name()),
			valueOr(patch.PlatformURL, current.PlatformURL()))
		if err != nil {
			return err
		}
		if name.Name() != current.Name() {
			if err := ensureUniquePlatformName(ctx, tx, name, id); err != nil {
				return err
			}
		}
		platform, err := existing.WithName(name)
		if err != nil {
			return err
		}
		if err := tx.UpdateSocialMediaPlatform(ctx, platform); err != nil {
			return err
		}
		result, modified = platform, true
		return nil
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if modified {
		s.publish(events.Updated, id)
	}
	return result, nil
}

func (s *SocialMediaPlatformService) DeleteSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) error {
	ctx, span := s.start(ctx, "Delete", id)
	defer span.End()

	err := s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
		if _, err := tx.GetSocialMediaPlatform(ctx, id); err != nil {
			return missing(err, "SocialMediaPlatform", id)
		}
		return tx.DeleteSocialMediaPlatform(ctx, id)
	})
	if err != nil {
		return s.fail(span, err)
	}

	s.publish(events.Deleted, id)
	return nil
}

func ensureUniquePlatformName(ctx context.Context, tx *db.Repository, name vo.SocialMediaName, excludeID ids.SocialMediaID) error {
	taken, err := tx.SocialMediaNameExists(ctx, name.Name(), excludeID)
	if err != nil {
		return err
	}
	if taken {
		return e.Conflictf("DuplicateSocialMediaName", "Social media platform '%s' already exists.", name.Name())
	}
	return nil
}
