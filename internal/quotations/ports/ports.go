// Package ports defines the external collaborator interfaces the quotation
// workflow depends on, keeping the service decoupled from their modules.
package ports

import (
	"context"

	crmservice "expodesk_backend/internal/crm/service"
	"expodesk_backend/internal/vies"

	"github.com/shopspring/decimal"
)

// ContactReconciler pushes confirmed customer state into the CRM.
type ContactReconciler interface {
	Reconcile(ctx context.Context, input crmservice.ContactInput) crmservice.Result
	SyncOrderValue(ctx context.Context, contactID int64, total decimal.Decimal)
}

// VATChecker validates an EU tax id for fiscal position derivation.
type VATChecker interface {
	CheckVAT(ctx context.Context, countryCode, number string) (vies.CheckResult, error)
}
