// Package crm provides the CRM bounded context module.
package crm

import (
	"expodesk_backend/internal/crm/service"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
)

// Module is the CRM bounded context module. It is not HTTP-facing: other
// modules consume the reconciler through their own ports.
type Module struct {
	reconciler *service.Reconciler
}

// NewModule creates and initializes the CRM module. When synchronization is
// administratively disabled the reconciler stays wired but reports every
// operation as skipped (graceful degradation).
func NewModule(cfg *config.Config, log *logger.Logger) *Module {
	client := NewClient(cfg, log)
	reconciler := service.New(client, cfg.CRMEnabled, cfg.EventTag, cfg.EventTagVariant, log)

	if cfg.CRMEnabled {
		log.Info("crm module initialized", "base_url", cfg.CRMBaseURL)
	} else {
		log.Info("crm module disabled: synchronization will be skipped")
	}

	return &Module{reconciler: reconciler}
}

// Reconciler returns the contact reconciler for external use.
func (m *Module) Reconciler() *service.Reconciler {
	return m.reconciler
}
