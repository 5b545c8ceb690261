package handlers

import (
	"context"

	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/ids"
	"github.com/testnest/admin/internal/admin/models"
	"github.com/testnest/admin/internal/pkg/utils"
)

type EmployeeController interface {
	GetEmployee(ctx context.Context, id ids.EmployeeID) (*models.Employee, error)
	ListEmployees(ctx context.Context, spec db.ListSpec) ([]*models.Employee, error)
	CountEmployees(ctx context.Context, spec db.ListSpec) (int64, error)
	CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id ids.EmployeeID, in models.EmployeeInput) (*models.Employee, error)
	PatchEmployee(ctx context.Context, id ids.EmployeeID, patch models.EmployeePatch) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id ids.EmployeeID) error
}

type EmployeeRequest struct {
	EmployeeNumber   string `json:"employeeNumber"`
	FirstName        string `json:"firstName"`
	MiddleName       string `json:"middleName"`
	LastName         string `json:"lastName"`
	EmailAddress     string `json:"emailAddress"`
	EmployeeStatusID int    `json:"employeeStatusId"`
	EmployeeRoleID   string `json:"employeeRoleId"`
	EstablishmentID  string `json:"establishmentId"`
}

type EmployeePatchRequest struct {
	EmployeeNumber   *string `json:"employeeNumber"`
	FirstName        *string `json:"firstName"`
	MiddleName       *string `json:"middleName"`
	LastName         *string `json:"lastName"`
	EmailAddress     *string `json:"emailAddress"`
	EmployeeStatusID *int    `json:"employeeStatusId"`
	EmployeeRoleID   *string `json:"employeeRoleId"`
	EstablishmentID  *string `json:"establishmentId"`
}

type EmployeeResponse struct {
	EmployeeID       string `json:"employeeId"`
	EmployeeNumber   string `json:"employeeNumber"`
	FirstName        string `json:"firstName"`
	MiddleName       string `json:"middleName"`
	LastName         string `json:"lastName"`
	EmailAddress     string `json:"emailAddress"`
	EmployeeStatusID int    `json:"employeeStatusId"`
	EmployeeStatus   string `json:"employeeStatus"`
	EmployeeRoleID   string `json:"employeeRoleId"`
	EstablishmentID  string `json:"establishmentId"`
}

func employeeResponse(x *models.Employee) any {
	return EmployeeResponse{
		EmployeeID:       x.ID.String(),
		EmployeeNumber:   x.Number.EmployeeNo(),
		FirstName:        x.Name.FirstName(),
		MiddleName:       x.Name.MiddleName(),
		LastName:         x.Name.LastName(),
		EmailAddress:     x.Email.Email(),
		EmployeeStatusID: x.Status.ID,
		EmployeeStatus:   x.Status.Name,
		EmployeeRoleID:   x.RoleID.String(),
		EstablishmentID:  x.EstablishmentID.String(),
	}
}

func employeeInput(req EmployeeRequest) models.EmployeeInput {
	return models.EmployeeInput{
		EmployeeNumber:  req.EmployeeNumber,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		Email:           req.EmailAddress,
		StatusID:        req.EmployeeStatusID,
		RoleID:          req.EmployeeRoleID,
		EstablishmentID: req.EstablishmentID,
	}
}

func employeeSeed(x *models.Employee) EmployeePatchRequest {
	return EmployeePatchRequest{
		EmployeeNumber:   utils.Ptr(x.Number.EmployeeNo()),
		FirstName:        utils.Ptr(x.Name.FirstName()),
		MiddleName:       utils.Ptr(x.Name.MiddleName()),
		LastName:         utils.Ptr(x.Name.LastName()),
		EmailAddress:     utils.Ptr(x.Email.Email()),
		EmployeeStatusID: utils.Ptr(x.Status.ID),
		EmployeeRoleID:   utils.Ptr(x.RoleID.String()),
		EstablishmentID:  utils.Ptr(x.EstablishmentID.String()),
	}
}

func employeePatch(req EmployeePatchRequest) models.EmployeePatch {
	return models.EmployeePatch{
		EmployeeNumber:  req.EmployeeNumber,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		Email:           req.EmailAddress,
		StatusID:        req.EmployeeStatusID,
		RoleID:          req.EmployeeRoleID,
		EstablishmentID: req.EstablishmentID,
	}
}

func (h *Handler) employees() routes {
	c := h.services.Employees
	return &resource[ids.Employee, models.Employee, models.EmployeeInput, models.EmployeePatch]{
		entity:  events.EntityEmployee,
		path:    "/api/employees",
		idParam: "employeeId",
		filters: []filter{
			contains("employeeNumber"), contains("firstName"), contains("middleName"), contains("lastName"),
			contains("emailAddress"), matchInt("employeeStatusId"), matchID("employeeRoleId"), matchID("establishmentId"),
		},
		cache:   h.cache,
		logger:  h.logger,
		get:     c.GetEmployee,
		list:    c.ListEmployees,
		count:   c.CountEmployees,
		create:  c.CreateEmployee,
		update:  c.UpdateEmployee,
		patch:   c.PatchEmployee,
		remove:  c.DeleteEmployee,
		idOf:    func(x *models.Employee) ids.EmployeeID { return x.ID },
		render:  employeeResponse,
		input:   bodyAs(employeeInput),
		patchOf: patchAs(employeeSeed, employeePatch),
	}
}
