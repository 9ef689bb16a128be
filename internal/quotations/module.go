// Package quotations provides the quotation bounded context: opening a
// quotation for a resolved customer, managing lines with event price
// overrides, and confirming orders with CRM synchronization.
package quotations

import (
	"expodesk_backend/internal/erp"
	"expodesk_backend/internal/flow"
	apphttp "expodesk_backend/internal/http"
	"expodesk_backend/internal/quotations/handler"
	"expodesk_backend/internal/quotations/ports"
	"expodesk_backend/internal/quotations/pricing"
	"expodesk_backend/internal/quotations/repository"
	"expodesk_backend/internal/quotations/service"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
	"expodesk_backend/platform/validator"
)

// Module is the quotations bounded context module.
type Module struct {
	handler *handler.Handler
}

// NewModule wires the quotation workflow against the ERP gateway, the VAT
// checker and the CRM reconciler. The event price override table is loaded
// once at startup.
func NewModule(gateway erp.Executor, vat ports.VATChecker, crm ports.ContactReconciler, tokens flow.Tokens, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(gateway)
	prices := pricing.Load(cfg.PriceOverridesPath, log)
	svc := service.New(repo, vat, crm, tokens, prices, cfg, log)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module name for registration logging.
func (m *Module) Name() string { return "quotations" }

// RegisterRoutes mounts the quotation routes on the versioned API group.
func (m *Module) RegisterRoutes(rc *apphttp.RouterContext) {
	m.handler.RegisterRoutes(rc.V1.Group("/quotations"))
}
