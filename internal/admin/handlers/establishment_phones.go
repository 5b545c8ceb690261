package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EstablishmentPhoneController interface {
	GetEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) (*models.EstablishmentPhone, error)
	ListEstablishmentPhones(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentPhone, error)
	CountEstablishmentPhones(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEstablishmentPhone(ctx context.Context, in models.EstablishmentPhoneInput) (*models.EstablishmentPhone, error)
	UpdateEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID, in models.EstablishmentPhoneInput) (*models.EstablishmentPhone, error)
	PatchEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID, patch models.EstablishmentPhonePatch) (*models.EstablishmentPhone, error)
	DeleteEstablishmentPhone(ctx context.Context, id ids.EstablishmentPhoneID) error
}

type EstablishmentPhoneRequest struct {
	EstablishmentID string `json:"establishmentId"`
	PhoneNumber     string `json:"phoneNumber"`
	IsPrimary       bool   `json:"isPrimary"`
}

type EstablishmentPhonePatchRequest struct {
	PhoneNumber *string `json:"phoneNumber"`
	IsPrimary   *bool   `json:"isPrimary"`
}

type EstablishmentPhoneResponse struct {
	EstablishmentPhoneID string `json:"establishmentPhoneId"`
	EstablishmentID      string `json:"establishmentId"`
	PhoneNumber          string `json:"phoneNumber"`
	IsPrimary            bool   `json:"isPrimary"`
}

func establishmentPhoneResponse(p *models.EstablishmentPhone) any {
	return EstablishmentPhoneResponse{
		EstablishmentPhoneID: p.ID.String(),
		EstablishmentID:      p.EstablishmentID.String(),
		PhoneNumber:          p.PhoneNumber.PhoneNo(),
		IsPrimary:            p.IsPrimary,
	}
}

func establishmentPhoneInput(req EstablishmentPhoneRequest) models.EstablishmentPhoneInput {
	return models.EstablishmentPhoneInput{
		EstablishmentID: req.EstablishmentID,
		PhoneNumber:     req.PhoneNumber,
		IsPrimary:       req.IsPrimary,
	}
}

func establishmentPhoneSeed(p *models.EstablishmentPhone) EstablishmentPhonePatchRequest {
	return EstablishmentPhonePatchRequest{
		PhoneNumber: utils.Ptr(p.PhoneNumber.PhoneNo()),
		IsPrimary:   utils.Ptr(p.IsPrimary),
	}
}

func establishmentPhonePatch(req EstablishmentPhonePatchRequest) models.EstablishmentPhonePatch {
	return models.EstablishmentPhonePatch{
		PhoneNumber: req.PhoneNumber,
		IsPrimary:   req.IsPrimary,
	}
}

func (h *Handler) establishmentPhones() routes {
	c := h.services.EstablishmentPhones
	return &resource[ids.EstablishmentPhone, models.EstablishmentPhone, models.EstablishmentPhoneInput, models.EstablishmentPhonePatch]{
		entity:  events.EntityEstablishmentPhone,
		path:    "/api/establishmentphones",
		idParam: "establishmentPhoneId",
		filters: []filter{contains("phoneNumber"), matchBool("isPrimary"), matchID("establishmentId")},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEstablishmentPhone,
		list:    c.ListEstablishmentPhones,
		count:   c.CountEstablishmentPhones,
		create:  c.CreateEstablishmentPhone,
		update:  c.UpdateEstablishmentPhone,
		patch:   c.PatchEstablishmentPhone,
		remove:  c.DeleteEstablishmentPhone,
		idOf:    func(p *models.EstablishmentPhone) ids.EstablishmentPhoneID { return p.ID },
		render:  establishmentPhoneResponse,
		input:   bodyAs(establishmentPhoneInput),
		patchOf: patchAs(establishmentPhoneSeed, establishmentPhonePatch),
	}
}
