package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type SocialMediaPlatformController interface {
	GetSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) (*models.SocialMediaPlatform, error)
	ListSocialMediaPlatforms(ctx context.Context, spec db.ListSpec) ([]*models.SocialMediaPlatform, error)
	CountSocialMediaPlatforms(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateSocialMediaPlatform(ctx context.Context, in models.SocialMediaPlatformInput) (*models.SocialMediaPlatform, error)
	UpdateSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID, in models.SocialMediaPlatformInput) (*models.SocialMediaPlatform, error)
	PatchSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID, patch models.SocialMediaPlatformPatch) (*models.SocialMediaPlatform, error)
	DeleteSocialMediaPlatform(ctx context.Context, id ids.SocialMediaID) error
}

type SocialMediaPlatformRequest struct {
	Name        string `json:"name"`
	PlatformURL string `json:"platformURL"`
}

type SocialMediaPlatformPatchRequest struct {
	Name        *string `json:"name"`
	PlatformURL *string `json:"platformURL"`
}

type SocialMediaPlatformResponse struct {
	SocialMediaID string `json:"socialMediaId"`
	Name          string `json:"name"`
	PlatformURL   string `json:"platformURL"`
}

func socialMediaPlatformResponse(p *models.SocialMediaPlatform) any {
	return SocialMediaPlatformResponse{
		SocialMediaID: p.ID.String(),
		Name:          p.Name.Name(),
		PlatformURL:   p.Name.PlatformURL(),
	}
}

func (h *Handler) socialMediaPlatforms() routes {
	c := h.services.SocialMediaPlatforms
	return &resource[ids.SocialMedia, models.SocialMediaPlatform, models.SocialMediaPlatformInput, models.SocialMediaPlatformPatch]{
		entity:  events.EntitySocialMediaPlatform,
		path:    "/api/socialmediaplatforms",
		idParam: "socialMediaId",
		filters: []filter{contains("name"), contains("platformURL")},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetSocialMediaPlatform,
		list:    c.ListSocialMediaPlatforms,
		count:   c.CountSocialMediaPlatforms,
		create:  c.CreateSocialMediaPlatform,
		update:  c.UpdateSocialMediaPlatform,
		patch:   c.PatchSocialMediaPlatform,
		remove:  c.DeleteSocialMediaPlatform,
		idOf:    func(p *models.SocialMediaPlatform) ids.SocialMediaID { return p.ID },
		render:  socialMediaPlatformResponse,
		input: bodyAs(func(req SocialMediaPlatformRequest) models.SocialMediaPlatformInput {
			return models.SocialMediaPlatformInput{Name: req.Name, PlatformURL: req.PlatformURL}
		}),
		patchOf: patchAs(
			func(p *models.SocialMediaPlatform) SocialMediaPlatformPatchRequest {
				return SocialMediaPlatformPatchRequest{
					Name:        utils.Ptr(p.Name.Name()),
					PlatformURL: utils.Ptr(p.Name.PlatformURL()),
				}
			},
			func(req SocialMediaPlatformPatchRequest) models.SocialMediaPlatformPatch {
				return models.SocialMediaPlatformPatch{Name: req.Name, PlatformURL: req.PlatformURL}
			},
		),
	}
}
