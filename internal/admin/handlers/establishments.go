package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EstablishmentController interface {
	GetEstablishment(ctx context.Context, id ids.EstablishmentID) (*models.Establishment, error)
	ListEstablishments(ctx context.Context, spec db.ListSpec) ([]*models.Establishment, error)
	CountEstablishments(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEstablishment(ctx context.Context, in models.EstablishmentInput) (*models.Establishment, error)
	UpdateEstablishment(ctx context.Context, id ids.EstablishmentID, in models.EstablishmentInput) (*models.Establishment, error)
	PatchEstablishment(ctx context.Context, id ids.EstablishmentID, patch models.EstablishmentPatch) (*models.Establishment, error)
	DeleteEstablishment(ctx context.Context, id ids.EstablishmentID) error
}

type EstablishmentRequest struct {
	EstablishmentName     string `json:"establishmentName"`
	EstablishmentEmail    string `json:"establishmentEmail"`
	EstablishmentStatusID int    `json:"establishmentStatusId"`
}

type EstablishmentPatchRequest struct {
	EstablishmentName     *string `json:"establishmentName"`
	EstablishmentEmail    *string `json:"establishmentEmail"`
	EstablishmentStatusID *int    `json:"establishmentStatusId"`
}

type EstablishmentResponse struct {
	EstablishmentID       string `json:"establishmentId"`
	EstablishmentName     string `json:"establishmentName"`
	EstablishmentEmail    string `json:"establishmentEmail"`
	EstablishmentStatusID int    `json:"establishmentStatusId"`
	EstablishmentStatus   string `json:"establishmentStatus"`
}

func establishmentResponse(x *models.Establishment) any {
	return EstablishmentResponse{
		EstablishmentID:       x.ID.String(),
		EstablishmentName:     x.Name.Name(),
		EstablishmentEmail:    x.Email.Email(),
		EstablishmentStatusID: x.Status.ID,
		EstablishmentStatus:   x.Status.Name,
	}
}

func establishmentInput(req EstablishmentRequest) models.EstablishmentInput {
	return models.EstablishmentInput{
		Name:     req.EstablishmentName,
		Email:    req.EstablishmentEmail,
		StatusID: req.EstablishmentStatusID,
	}
}

func establishmentSeed(x *models.Establishment) EstablishmentPatchRequest {
	return EstablishmentPatchRequest{
		EstablishmentName:     utils.Ptr(x.Name.Name()),
		EstablishmentEmail:    utils.Ptr(x.Email.Email()),
		EstablishmentStatusID: utils.Ptr(x.Status.ID),
	}
}

func establishmentPatch(req EstablishmentPatchRequest) models.EstablishmentPatch {
	return models.EstablishmentPatch{
		Name:     req.EstablishmentName,
		Email:    req.EstablishmentEmail,
		StatusID: req.EstablishmentStatusID,
	}
}

func (h *Handler) establishments() routes {
	c := h.services.Establishments
	return &resource[ids.Establishment, models.Establishment, models.EstablishmentInput, models.EstablishmentPatch]{
		entity:  events.EntityEstablishment,
		path:    "/api/establishments",
		idParam: "establishmentId",
		filters: []filter{contains("establishmentName"), contains("establishmentEmail"), matchInt("establishmentStatusId")},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEstablishment,
		list:    c.ListEstablishments,
		count:   c.CountEstablishments,
		create:  c.CreateEstablishment,
		update:  c.UpdateEstablishment,
		patch:   c.PatchEstablishment,
		remove:  c.DeleteEstablishment,
		idOf:    func(x *models.Establishment) ids.EstablishmentID { return x.ID },
		render:  establishmentResponse,
		input:   bodyAs(establishmentInput),
		patchOf: patchAs(establishmentSeed, establishmentPatch),
	}
}
