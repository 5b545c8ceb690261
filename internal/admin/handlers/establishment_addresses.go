package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EstablishmentAddressController interface {
	GetEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) (*models.EstablishmentAddress, error)
	ListEstablishmentAddresses(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentAddress, error)
	CountEstablishmentAddresses(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEstablishmentAddress(ctx context.Context, in models.EstablishmentAddressInput) (*models.EstablishmentAddress, error)
	UpdateEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID, in models.EstablishmentAddressInput) (*models.EstablishmentAddress, error)
	PatchEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID, patch models.EstablishmentAddressPatch) (*models.EstablishmentAddress, error)
	DeleteEstablishmentAddress(ctx context.Context, id ids.EstablishmentAddressID) error
}

type EstablishmentAddressRequest struct {
	EstablishmentID string  `json:"establishmentId"`
	AddressLine     string  `json:"addressLine"`
	City            string  `json:"city"`
	Municipality    string  `json:"municipality"`
	Province        string  `json:"province"`
	Region          string  `json:"region"`
	Country         string  `json:"country"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	IsPrimary       bool    `json:"isPrimary"`
}

type EstablishmentAddressPatchRequest struct {
	AddressLine  *string  `json:"addressLine"`
	City         *string  `json:"city"`
	Municipality *string  `json:"municipality"`
	Province     *string  `json:"province"`
	Region       *string  `json:"region"`
	Country      *string  `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsPrimary    *bool    `json:"isPrimary"`
}

type EstablishmentAddressResponse struct {
	EstablishmentAddressID string  `json:"establishmentAddressId"`
	EstablishmentID        string  `json:"establishmentId"`
	AddressLine            string  `json:"addressLine"`
	City                   string  `json:"city"`
	Municipality           string  `json:"municipality"`
	Province               string  `json:"province"`
	Region                 string  `json:"region"`
	Country                string  `json:"country"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	IsPrimary              bool    `json:"isPrimary"`
}

func establishmentAddressResponse(a *models.EstablishmentAddress) any {
	return EstablishmentAddressResponse{
		EstablishmentAddressID: a.ID.String(),
		EstablishmentID:        a.EstablishmentID.String(),
		AddressLine:            a.Address.AddressLine(),
		City:                   a.Address.City(),
		Municipality:           a.Address.Municipality(),
		Province:               a.Address.Province(),
		Region:                 a.Address.Region(),
		Country:                a.Address.Country(),
		Latitude:               a.Address.Latitude(),
		Longitude:              a.Address.Longitude(),
		IsPrimary:              a.IsPrimary,
	}
}

func establishmentAddressInput(req EstablishmentAddressRequest) models.EstablishmentAddressInput {
	return models.EstablishmentAddressInput{
		EstablishmentID: req.EstablishmentID,
		AddressLine:     req.AddressLine,
		City:            req.City,
		Municipality:    req.Municipality,
		Province:        req.Province,
		Region:          req.Region,
		Country:         req.Country,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		IsPrimary:       req.IsPrimary,
	}
}

func establishmentAddressSeed(a *models.EstablishmentAddress) EstablishmentAddressPatchRequest {
	return EstablishmentAddressPatchRequest{
		AddressLine:  utils.Ptr(a.Address.AddressLine()),
		City:         utils.Ptr(a.Address.City()),
		Municipality: utils.Ptr(a.Address.Municipality()),
		Province:     utils.Ptr(a.Address.Province()),
		Region:       utils.Ptr(a.Address.Region()),
		Country:      utils.Ptr(a.Address.Country()),
		Latitude:     utils.Ptr(a.Address.Latitude()),
		Longitude:    utils.Ptr(a.Address.Longitude()),
		IsPrimary:    utils.Ptr(a.IsPrimary),
	}
}

func establishmentAddressPatch(req EstablishmentAddressPatchRequest) models.EstablishmentAddressPatch {
	return models.EstablishmentAddressPatch{
		AddressLine:  req.AddressLine,
		City:         req.City,
		Municipality: req.Municipality,
		Province:     req.Province,
		Region:       req.Region,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsPrimary:    req.IsPrimary,
	}
}

func (h *Handler) establishmentAddresses() routes {
	c := h.services.EstablishmentAddresses
	return &resource[ids.EstablishmentAddress, models.EstablishmentAddress, models.EstablishmentAddressInput, models.EstablishmentAddressPatch]{
		entity:  events.EntityEstablishmentAddress,
		path:    "/api/establishmentaddresses",
		idParam: "establishmentAddressId",
		filters: []filter{
			contains("city"), contains("municipality"), contains("province"), contains("region"),
			matchBool("isPrimary"), matchID("establishmentId"),
		},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEstablishmentAddress,
		list:    c.ListEstablishmentAddresses,
		count:   c.CountEstablishmentAddresses,
		create:  c.CreateEstablishmentAddress,
		update:  c.UpdateEstablishmentAddress,
		patch:   c.PatchEstablishmentAddress,
		remove:  c.DeleteEstablishmentAddress,
		idOf:    func(a *models.EstablishmentAddress) ids.EstablishmentAddressID { return a.ID },
		render:  establishmentAddressResponse,
		input:   bodyAs(establishmentAddressInput),
		patchOf: patchAs(establishmentAddressSeed, establishmentAddressPatch),
	}
}
