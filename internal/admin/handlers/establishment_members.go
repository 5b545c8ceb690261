package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EstablishmentMemberController interface {
	GetEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) (*models.EstablishmentMember, error)
	ListEstablishmentMembers(ctx context.Context, spec db.ListSpec) ([]*models.EstablishmentMember, error)
	CountEstablishmentMembers(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEstablishmentMember(ctx context.Context, in models.EstablishmentMemberInput) (*models.EstablishmentMember, error)
	UpdateEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID, in models.EstablishmentMemberInput) (*models.EstablishmentMember, error)
	PatchEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID, patch models.EstablishmentMemberPatch) (*models.EstablishmentMember, error)
	DeleteEstablishmentMember(ctx context.Context, id ids.EstablishmentMemberID) error
}

type EstablishmentMemberRequest struct {
	EstablishmentID   string `json:"establishmentId"`
	EmployeeID        string `json:"employeeId"`
	MemberTitle       string `json:"memberTitle"`
	MemberDescription string `json:"memberDescription"`
	MemberTag         string `json:"memberTag"`
}

type EstablishmentMemberPatchRequest struct {
	EmployeeID        *string `json:"employeeId"`
	MemberTitle       *string `json:"memberTitle"`
	MemberDescription *string `json:"memberDescription"`
	MemberTag         *string `json:"memberTag"`
}

type EstablishmentMemberResponse struct {
	EstablishmentMemberID string `json:"establishmentMemberId"`
	EstablishmentID       string `json:"establishmentId"`
	EmployeeID            string `json:"employeeId"`
	MemberTitle           string `json:"memberTitle"`
	MemberDescription     string `json:"memberDescription"`
	MemberTag             string `json:"memberTag"`
}

func establishmentMemberResponse(m *models.EstablishmentMember) any {
	return EstablishmentMemberResponse{
		EstablishmentMemberID: m.ID.String(),
		EstablishmentID:       m.EstablishmentID.String(),
		EmployeeID:            m.EmployeeID.String(),
		MemberTitle:           m.Title.Title(),
		MemberDescription:     m.Description.Description(),
		MemberTag:             m.Tag.Tag(),
	}
}

func establishmentMemberInput(req EstablishmentMemberRequest) models.EstablishmentMemberInput {
	return models.EstablishmentMemberInput{
		EstablishmentID:   req.EstablishmentID,
		EmployeeID:        req.EmployeeID,
		MemberTitle:       req.MemberTitle,
		MemberDescription: req.MemberDescription,
		MemberTag:         req.MemberTag,
	}
}

func establishmentMemberSeed(m *models.EstablishmentMember) EstablishmentMemberPatchRequest {
	return EstablishmentMemberPatchRequest{
		EmployeeID:        utils.Ptr(m.EmployeeID.String()),
		MemberTitle:       utils.Ptr(m.Title.Title()),
		MemberDescription: utils.Ptr(m.Description.Description()),
		MemberTag:         utils.Ptr(m.Tag.Tag()),
	}
}

func establishmentMemberPatch(req EstablishmentMemberPatchRequest) models.EstablishmentMemberPatch {
	return models.EstablishmentMemberPatch{
		EmployeeID:        req.EmployeeID,
		MemberTitle:       req.MemberTitle,
		MemberDescription: req.MemberDescription,
		MemberTag:         req.MemberTag,
	}
}

func (h *Handler) establishmentMembers() routes {
	c := h.services.EstablishmentMembers
	return &resource[ids.EstablishmentMember, models.EstablishmentMember, models.EstablishmentMemberInput, models.EstablishmentMemberPatch]{
		entity:  events.EntityEstablishmentMember,
		path:    "/api/establishmentmembers",
		idParam: "establishmentMemberId",
		filters: []filter{
			contains("memberTitle"), contains("memberDescription"), contains("memberTag"),
			matchID("employeeId"), matchID("establishmentId"),
		},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEstablishmentMember,
		list:    c.ListEstablishmentMembers,
		count:   c.CountEstablishmentMembers,
		create:  c.CreateEstablishmentMember,
		update:  c.UpdateEstablishmentMember,
		patch:   c.PatchEstablishmentMember,
		remove:  c.DeleteEstablishmentMember,
		idOf:    func(m *models.EstablishmentMember) ids.EstablishmentMemberID { return m.ID },
		render:  establishmentMemberResponse,
		input:   bodyAs(establishmentMemberInput),
		patchOf: patchAs(establishmentMemberSeed, establishmentMemberPatch),
	}
}
