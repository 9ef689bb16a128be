// Package service implements contact reconciliation against the CRM.
package service

import (
	"context"
	"strings"

	"expodesk_backend/internal/crm/transport"
	"expodesk_backend/platform/logger"

	"github.com/shopspring/decimal"
)

// Gateway is the CRM call surface the reconciler depends on.
type Gateway interface {
	SearchContacts(ctx context.Context, email string) ([]transport.Contact, error)
	CreateContact(ctx context.Context, contact transport.NewContact) (int64, error)
	UpdateContact(ctx context.Context, contactID int64, patch transport.ContactPatch) error
}

// ContactInput is the customer-shaped payload reconciled into the CRM.
type ContactInput struct {
	Name           string
	Email          string
	Phone          string
	Company        string
	Classification string
}

// Reconciliation outcome statuses.
const (
	StatusSkipped = "skipped"
	StatusUpdated = "updated"
	StatusCreated = "created"
	StatusFailed  = "failed"
)

// Result reports the outcome of a reconciliation.
type Result struct {
	Status        string
	ContactID     int64
	RecognizedTag string
}

// OrderValueField is the CRM custom field tracking the confirmed order total.
const OrderValueField = "Valor Pedido"

// recognizedTags are the classification values the reconciler treats as
// authoritative for contact typing.
var recognizedTags = []string{"mayorista", "laboratorio", "clinica_dental", "estudiante", "otros"}

// displayNames maps internal classifications to the CRM-facing labels.
var displayNames = map[string]string{
	"mayorista":      "Mayorista",
	"laboratorio":    "Laboratorio Dental",
	"clinica_dental": "Clinica Dental",
	"estudiante":     "Estudiante de Odontologia",
	"otros":          "Otros",
}

// Reconciler keeps CRM contacts consistent with ERP customer state.
// All of its operations are best-effort: failures are logged and reported in
// the result, never raised to the caller.
type Reconciler struct {
	gateway         Gateway
	enabled         bool
	eventTag        string
	eventTagVariant string
	log             *logger.Logger
}

// New creates a reconciler. When enabled is false every operation is a
// logged no-op reporting a skipped status.
func New(gateway Gateway, enabled bool, eventTag, eventTagVariant string, log *logger.Logger) *Reconciler {
	return &Reconciler{
		gateway:         gateway,
		enabled:         enabled,
		eventTag:        eventTag,
		eventTagVariant: eventTagVariant,
		log:             log,
	}
}

// Reconcile finds or creates the CRM contact matching the input's email and
// brings its tags, origin source and contact type in line with the event.
func (r *Reconciler) Reconcile(ctx context.Context, input ContactInput) Result {
	if !r.enabled {
		r.log.SyncSkipped("reconcile contact")
		return Result{Status: StatusSkipped}
	}

	contacts, err := r.gateway.SearchContacts(ctx, input.Email)
	if err != nil {
		// Search failure falls through to the create path, matching the
		// original behavior of only updating on a clean search hit.
		contacts = nil
	}

	if match := pickExactEmailMatch(contacts, input.Email); match != nil {
		return r.updateExisting(ctx, match, input)
	}

	return r.createNew(ctx, input)
}

func (r *Reconciler) updateExisting(ctx context.Context, match *transport.Contact, input ContactInput) Result {
	recognized := firstRecognizedTag(match.Tags)

	tags := append([]string(nil), match.Tags...)
	if !containsTag(tags, r.eventTag) {
		tags = append(tags, r.eventTag)
	}

	classification := input.Classification
	if isRecognized(classification) && !containsTag(tags, classification) {
		tags = append(tags, classification)
		recognized = classification
	}

	patch := transport.ContactPatch{
		Tags:          tags,
		ContactSource: r.eventTag,
	}
	if display, ok := displayNames[classification]; ok {
		patch.ContactType = display
	}

	if err := r.gateway.UpdateContact(ctx, match.ID, patch); err != nil {
		// Logged by the gateway; the caller still gets the resolved tag/id.
		r.log.Warn("crm contact update failed", "contact_id", match.ID)
	}

	return Result{Status: StatusUpdated, ContactID: match.ID, RecognizedTag: recognized}
}

func (r *Reconciler) createNew(ctx context.Context, input ContactInput) Result {
	tags := []string{r.eventTagVariant, r.eventTag}
	recognized := ""
	if isRecognized(input.Classification) {
		tags = append([]string{input.Classification}, tags...)
		recognized = input.Classification
	}

	contact := transport.NewContact{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Company:       companyOrName(input.Company, input.Name),
		Tags:          tags,
		ContactSource: r.eventTag,
	}
	if display, ok := displayNames[input.Classification]; ok {
		contact.ContactType = display
	}

	contactID, err := r.gateway.CreateContact(ctx, contact)
	if err != nil {
		return Result{Status: StatusFailed}
	}

	return Result{Status: StatusCreated, ContactID: contactID, RecognizedTag: recognized}
}

// SyncOrderValue writes the confirmed order total to the contact's order
// value custom field. CRM sync must never block order confirmation, so
// failures are logged and swallowed.
func (r *Reconciler) SyncOrderValue(ctx context.Context, contactID int64, total decimal.Decimal) {
	if !r.enabled {
		r.log.SyncSkipped("sync order value")
		return
	}
	if contactID == 0 {
		r.log.Warn("crm contact unknown, order value not synced")
		return
	}

	patch := transport.ContactPatch{
		CustomFields: []transport.CustomField{
			{Field: OrderValueField, Value: total.InexactFloat64()},
		},
	}

	if err := r.gateway.UpdateContact(ctx, contactID, patch); err != nil {
		r.log.Warn("crm order value sync failed", "contact_id", contactID)
		return
	}

	r.log.Info("crm order value synced", "contact_id", contactID, "total", total.String())
}

// pickExactEmailMatch selects the target contact among search results: the
// first contact whose email matches case-insensitively. The search itself is
// a substring match, so exactness is enforced here. Picking the first of
// several equal-email results is deliberate and undocumented upstream; keep
// the tie-break in this one place.
func pickExactEmailMatch(contacts []transport.Contact, email string) *transport.Contact {
	for i := range contacts {
		if strings.EqualFold(contacts[i].Email, email) {
			return &contacts[i]
		}
	}
	return nil
}

func firstRecognizedTag(tags []string) string {
	for _, tag := range tags {
		if isRecognized(tag) {
			return tag
		}
	}
	return ""
}

func isRecognized(tag string) bool {
	for _, recognized := range recognizedTags {
		if tag == recognized {
			return true
		}
	}
	return false
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func companyOrName(company, name string) string {
	if strings.TrimSpace(company) != "" {
		return company
	}
	return name
}
