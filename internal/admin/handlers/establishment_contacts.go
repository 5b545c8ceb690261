package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EstablishmentContactController interface {
	GetEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) (*models.EstablishmentContact, error)
	ListEstablishmentContacts(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentContact, error)
	CountEstablishmentContacts(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEstablishmentContact(ctx context.Context, in models.EstablishmentContactInput) (*models.EstablishmentContact, error)
	UpdateEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID, in models.EstablishmentContactInput) (*models.EstablishmentContact, error)
	PatchEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID, patch models.EstablishmentContactPatch) (*models.EstablishmentContact, error)
	DeleteEstablishmentContact(ctx context.Context, id ids.EstablishmentContactID) error
}

type EstablishmentContactRequest struct {
	EstablishmentID         string `json:"establishmentId"`
	ContactPersonFirstName  string `json:"contactPersonFirstName"`
	ContactPersonMiddleName string `json:"contactPersonMiddleName"`
	ContactPersonLastName   string `json:"contactPersonLastName"`
	ContactPhoneNumber      string `json:"contactPhoneNumber"`
	IsPrimary               bool   `json:"isPrimary"`
}

type EstablishmentContactPatchRequest struct {
	ContactPersonFirstName  *string `json:"contactPersonFirstName"`
	ContactPersonMiddleName *string `json:"contactPersonMiddleName"`
	ContactPersonLastName   *string `json:"contactPersonLastName"`
	ContactPhoneNumber      *string `json:"contactPhoneNumber"`
	IsPrimary               *bool   `json:"isPrimary"`
}

type EstablishmentContactResponse struct {
	EstablishmentContactID  string `json:"establishmentContactId"`
	EstablishmentID         string `json:"establishmentId"`
	ContactPersonFirstName  string `json:"contactPersonFirstName"`
	ContactPersonMiddleName string `json:"contactPersonMiddleName"`
	ContactPersonLastName   string `json:"contactPersonLastName"`
	ContactPhoneNumber      string `json:"contactPhoneNumber"`
	IsPrimary               bool   `json:"isPrimary"`
}

func establishmentContactResponse(c *models.EstablishmentContact) any {
	return EstablishmentContactResponse{
		EstablishmentContactID:  c.ID.String(),
		EstablishmentID:         c.EstablishmentID.String(),
		ContactPersonFirstName:  c.ContactPerson.FirstName(),
		ContactPersonMiddleName: c.ContactPerson.MiddleName(),
		ContactPersonLastName:   c.ContactPerson.LastName(),
		ContactPhoneNumber:      c.ContactPhone.PhoneNo(),
		IsPrimary:               c.IsPrimary,
	}
}

func establishmentContactInput(req EstablishmentContactRequest) models.EstablishmentContactInput {
	return models.EstablishmentContactInput{
		EstablishmentID:         req.EstablishmentID,
		ContactPersonFirstName:  req.ContactPersonFirstName,
		ContactPersonMiddleName: req.ContactPersonMiddleName,
		ContactPersonLastName:   req.ContactPersonLastName,
		ContactPhoneNumber:      req.ContactPhoneNumber,
		IsPrimary:               req.IsPrimary,
	}
}

func establishmentContactSeed(c *models.EstablishmentContact) EstablishmentContactPatchRequest {
	return EstablishmentContactPatchRequest{
		ContactPersonFirstName:  utils.Ptr(c.ContactPerson.FirstName()),
		ContactPersonMiddleName: utils.Ptr(c.ContactPerson.MiddleName()),
		ContactPersonLastName:   utils.Ptr(c.ContactPerson.LastName()),
		ContactPhoneNumber:      utils.Ptr(c.ContactPhone.PhoneNo()),
		IsPrimary:               utils.Ptr(c.IsPrimary),
	}
}

func establishmentContactPatch(req EstablishmentContactPatchRequest) models.EstablishmentContactPatch {
	return models.EstablishmentContactPatch{
		ContactPersonFirstName:  req.ContactPersonFirstName,
		ContactPersonMiddleName: req.ContactPersonMiddleName,
		ContactPersonLastName:   req.ContactPersonLastName,
		ContactPhoneNumber:      req.ContactPhoneNumber,
		IsPrimary:               req.IsPrimary,
	}
}

func (h *Handler) establishmentContacts() routes {
	c := h.services.EstablishmentContacts
	return &resource[ids.EstablishmentContact, models.EstablishmentContact, models.EstablishmentContactInput, models.EstablishmentContactPatch]{
		entity:  events.EntityEstablishmentContact,
		path:    "/api/establishmentcontacts",
		idParam: "establishmentContactId",
		filters: []filter{
			contains("contactPersonFirstName"), contains("contactPersonMiddleName"), contains("contactPersonLastName"),
			contains("contactPhoneNumber"), matchBool("isPrimary"), matchID("establishmentId"),
		},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEstablishmentContact,
		list:    c.ListEstablishmentContacts,
		count:   c.CountEstablishmentContacts,
		create:  c.CreateEstablishmentContact,
		update:  c.UpdateEstablishmentContact,
		patch:   c.PatchEstablishmentContact,
		remove:  c.DeleteEstablishmentContact,
		idOf:    func(c *models.EstablishmentContact) ids.EstablishmentContactID { return c.ID },
		render:  establishmentContactResponse,
		input:   bodyAs(establishmentContactInput),
		patchOf: patchAs(establishmentContactSeed, establishmentContactPatch),
	}
}
