package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EmployeeRoleController interface {
	GetEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) (*models.EmployeeRole, error)
	ListEmployeeRoles(ctx context.Context, spec db.ListSpec) ([]*models.EmployeeRole, error)
	CountEmployeeRoles(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEmployeeRole(ctx context.Context, in models.EmployeeRoleInput) (*models.EmployeeRole, error)
	UpdateEmployeeRole(ctx context.Context, id ids.EmployeeRoleID, in models.EmployeeRoleInput) (*models.EmployeeRole, error)
	PatchEmployeeRole(ctx context.Context, id ids.EmployeeRoleID, patch models.EmployeeRolePatch) (*models.EmployeeRole, error)
	DeleteEmployeeRole(ctx context.Context, id ids.EmployeeRoleID) error
}

type EmployeeRoleRequest struct {
	RoleName string `json:"roleName"`
}

type EmployeeRolePatchRequest struct {
	RoleName *string `json:"roleName"`
}

type EmployeeRoleResponse struct {
	EmployeeRoleID string `json:"employeeRoleId"`
	RoleName       string `json:"roleName"`
}

func employeeRoleResponse(r *models.EmployeeRole) any {
	return EmployeeRoleResponse{EmployeeRoleID: r.ID.String(), RoleName: r.RoleName.Name()}
}

func (h *Handler) employeeRoles() routes {
	c := h.services.EmployeeRoles
	return &resource[ids.EmployeeRole, models.EmployeeRole, models.EmployeeRoleInput, models.EmployeeRolePatch]{
		entity:  events.EntityEmployeeRole,
		path:    "/api/employeeroles",
		idParam: "employeeRoleId",
		filters: []filter{contains("roleName")},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEmployeeRole,
		list:    c.ListEmployeeRoles,
		count:   c.CountEmployeeRoles,
		create:  c.CreateEmployeeRole,
		update:  c.UpdateEmployeeRole,
		patch:   c.PatchEmployeeRole,
		remove:  c.DeleteEmployeeRole,
		idOf:    func(r *models.EmployeeRole) ids.EmployeeRoleID { return r.ID },
		render:  employeeRoleResponse,
		input: bodyAs(func(req EmployeeRoleRequest) models.EmployeeRoleInput {
			return models.EmployeeRoleInput{RoleName: req.RoleName}
		}),
		patchOf: patchAs(
			func(r *models.EmployeeRole) EmployeeRolePatchRequest {
				return EmployeeRolePatchRequest{RoleName: utils.Ptr(r.RoleName.Name())}
			},
			func(req EmployeeRolePatchRequest) models.EmployeeRolePatch {
				return models.EmployeeRolePatch{RoleName: req.RoleName}
			},
		),
	}
}
