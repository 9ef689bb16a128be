// Package customers provides the customer resolution bounded context: looking
// up booth visitors in the ERP, prefilling unknown ones from the EU VAT
// registry, and saving the resulting customer record.
package customers

import (
	"expodesk_backend/internal/customers/handler"
	"expodesk_backend/internal/customers/repository"
	"expodesk_backend/internal/customers/service"
	"expodesk_backend/internal/erp"
	"expodesk_backend/internal/flow"
	apphttp "expodesk_backend/internal/http"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
	"expodesk_backend/platform/validator"
)

// Module is the customers bounded context module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the customers context against the ERP gateway and the VAT
// registry lookup.
func NewModule(gateway erp.Executor, vat service.VATLookup, tokens flow.Tokens, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(gateway)
	svc := service.New(repo, vat, tokens, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for registration logging.
func (m *Module) Name() string { return "customers" }

// RegisterRoutes mounts the customer routes on the versioned API group.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	m.handler.RegisterRoutes(rc.V1.Group("/customers"))
}
