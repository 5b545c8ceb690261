// Package handlers serves the admin REST API. Routes are registered on a
// grpc-gateway ServeMux next to the gRPC health endpoint, and translate
// between JSON documents and the domain models of the service layer.
package handlers

import (
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/testnest/admin/internal/admin/cache"
)

// Services are the controllers behind the REST resources.
type Services struct {
	Employees              EmployeeController
	Establishments         EstablishmentController
	EstablishmentAddresses EstablishmentAddressController
	EstablishmentContacts  EstablishmentContactController
	EstablishmentPhones    EstablishmentPhoneController
	EstablishmentMembers   EstablishmentMemberController
	EmployeeRoles          EmployeeRoleController
	SocialMediaPlatforms   SocialMediaPlatformController
}

type routes interface {
	register(mux *runtime.ServeMux) error
}

type Handler struct {
	services Services
	cache    *cache.ResponseCache
	logger   *zap.Logger
}

// NewHandler builds the REST handler. A nil cache disables response caching.
func NewHandler(services Services, responseCache *cache.ResponseCache, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		cache:    responseCache,
		logger:   logger.Named("http_handler"),
	}
}

// Register adds every resource route to mux.
func (h *Handler) Register(mux *runtime.ServeMux) error {
	for _, r := range []routes{
		h.employees(),
		h.establishments(),
		h.establishmentAddresses(),
		h.establishmentContacts(),
		h.establishmentPhones(),
		h.establishmentMembers(),
		h.employeeRoles(),
		h.socialMediaPlatforms(),
	} {
		if err := r.register(mux); err != nil {
			return err
		}
	}
	return nil
}
