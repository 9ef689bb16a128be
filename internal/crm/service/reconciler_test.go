package service

import (
	"context"
	"errors"
	"testing"

	"expodesk_backend/internal/crm/transport"
	"expodesk_backend/platform/logger"

	"github.com/shopspring/decimal"
)

type fakeGateway struct {
	searchResults []transport.Contact
	searchErr     error
	searchCalls   int

	created    []transport.NewContact
	createID   int64
	createErr  error
	patches    map[int64][]transport.ContactPatch
	updateErr  error
	updateCnt  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{createID: 900, patches: make(map[int64][]transport.ContactPatch)}
}

func (f *fakeGateway) SearchContacts(ctx context.Context, email string) ([]transport.Contact, error) {
	f.searchCalls++
	return f.searchResults, f.searchErr
}

func (f *fakeGateway) CreateContact(ctx context.Context, contact transport.NewContact) (int64, error) {
	f.created = append(f.created, contact)
	return f.createID, f.createErr
}

func (f *fakeGateway) UpdateContact(ctx context.Context, contactID int64, patch transport.ContactPatch) error {
	f.updateCnt++
	f.patches[contactID] = append(f.patches[contactID], patch)
	return f.updateErr
}

func newReconciler(gw Gateway, enabled bool) *Reconciler {
	return New(gw, enabled, "Expodental 2026", "Expodental-2026", logger.New("development"))
}

func TestReconcileDisabledSkipsWithoutNetworkCall(t *testing.T) {
	gw := newFakeGateway()
	r := newReconciler(gw, false)

	result := r.Reconcile(context.Background(), ContactInput{Email: "a@b.es"})

	if result.Status != StatusSkipped {
		t.Fatalf("expected skipped, got %q", result.Status)
	}
	if result.ContactID != 0 || result.RecognizedTag != "" {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if gw.searchCalls != 0 || gw.updateCnt != 0 || len(gw.created) != 0 {
		t.Fatal("expected no gateway calls when disabled")
	}
}

func TestReconcileRequestClassificationOverridesExistingTag(t *testing.T) {
	gw := newFakeGateway()
	gw.searchResults = []transport.Contact{
		{ID: 12, Email: "Lab@Clinic.es", Tags: []string{"laboratorio"}},
	}
	r := newReconciler(gw, true)

	result := r.Reconcile(context.Background(), ContactInput{
		Email:          "lab@clinic.es",
		Classification: "mayorista",
	})

	if result.Status != StatusUpdated || result.ContactID != 12 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.RecognizedTag != "mayorista" {
		t.Fatalf("expected request classification to override, got %q", result.RecognizedTag)
	}

	patches := gw.patches[12]
	if len(patches) != 1 {
		t.Fatalf("expected one patch, got %d", len(patches))
	}
	tags := patches[0].Tags
	if !containsTag(tags, "Expodental 2026") || !containsTag(tags, "mayorista") || !containsTag(tags, "laboratorio") {
		t.Fatalf("unexpected merged tags: %v", tags)
	}
	if patches[0].ContactType != "Mayorista" {
		t.Fatalf("unexpected contact type %q", patches[0].ContactType)
	}
}

func TestReconcileKeepsExistingRecognizedTagWhenAlreadyPresent(t *testing.T) {
	gw := newFakeGateway()
	gw.searchResults = []transport.Contact{
		{ID: 3, Email: "c@d.pt", Tags: []string{"estudiante", "mayorista"}},
	}
	r := newReconciler(gw, true)

	result := r.Reconcile(context.Background(), ContactInput{
		Email:          "c@d.pt",
		Classification: "mayorista",
	})

	// mayorista is already tagged, so the first recognized existing tag wins.
	if result.RecognizedTag != "estudiante" {
		t.Fatalf("expected estudiante, got %q", result.RecognizedTag)
	}
}

func TestReconcileRequiresExactEmailMatch(t *testing.T) {
	gw := newFakeGateway()
	gw.searchResults = []transport.Contact{
		{ID: 5, Email: "prefix-a@b.es", Tags: nil},
	}
	r := newReconciler(gw, true)

	result := r.Reconcile(context.Background(), ContactInput{
		Name:           "Ana",
		Email:          "a@b.es",
		Classification: "otros",
	})

	if result.Status != StatusCreated {
		t.Fatalf("expected substring-only match to create, got %q", result.Status)
	}
	if gw.updateCnt != 0 {
		t.Fatal("expected no patch of the non-matching contact")
	}
}

func TestReconcileCreatesWithClassificationFirst(t *testing.T) {
	gw := newFakeGateway()
	r := newReconciler(gw, true)

	result := r.Reconcile(context.Background(), ContactInput{
		Name:           "Clinica Sol",
		Email:          "sol@clinic.es",
		Phone:          "+34911222333",
		Classification: "clinica_dental",
	})

	if result.Status != StatusCreated || result.ContactID != 900 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.RecognizedTag != "clinica_dental" {
		t.Fatalf("unexpected recognized tag %q", result.RecognizedTag)
	}

	if len(gw.created) != 1 {
		t.Fatalf("expected one create, got %d", len(gw.created))
	}
	created := gw.created[0]
	if len(created.Tags) != 3 || created.Tags[0] != "clinica_dental" {
		t.Fatalf("expected classification tag first, got %v", created.Tags)
	}
	if created.Company != "Clinica Sol" {
		t.Fatalf("expected company fallback to name, got %q", created.Company)
	}
	if created.ContactSource != "Expodental 2026" {
		t.Fatalf("unexpected contact source %q", created.ContactSource)
	}
	if created.ContactType != "Clinica Dental" {
		t.Fatalf("unexpected contact type %q", created.ContactType)
	}
}

func TestReconcileCreateFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.createErr = errors.New("boom")
	r := newReconciler(gw, true)

	result := r.Reconcile(context.Background(), ContactInput{Email: "x@y.es"})

	if result.Status != StatusFailed || result.ContactID != 0 {
		t.Fatalf("expected failed result, got %+v", result)
	}
}

func TestReconcileSearchFailureFallsThroughToCreate(t *testing.T) {
	gw := newFakeGateway()
	gw.searchErr = errors.New("timeout")
	r := newReconciler(gw, true)

	result := r.Reconcile(context.Background(), ContactInput{Name: "Ana", Email: "a@b.es"})

	if result.Status != StatusCreated {
		t.Fatalf("expected create on search failure, got %q", result.Status)
	}
}

func TestSyncOrderValue(t *testing.T) {
	gw := newFakeGateway()
	r := newReconciler(gw, true)

	r.SyncOrderValue(context.Background(), 44, decimal.NewFromFloat(123.45))

	patches := gw.patches[44]
	if len(patches) != 1 {
		t.Fatalf("expected one patch, got %d", len(patches))
	}
	fields := patches[0].CustomFields
	if len(fields) != 1 || fields[0].Field != OrderValueField || fields[0].Value != 123.45 {
		t.Fatalf("unexpected custom fields: %+v", fields)
	}
}

func TestSyncOrderValueDisabled(t *testing.T) {
	gw := newFakeGateway()
	r := newReconciler(gw, false)

	r.SyncOrderValue(context.Background(), 44, decimal.NewFromInt(10))

	if gw.updateCnt != 0 {
		t.Fatal("expected no patch when disabled")
	}
}

func TestSyncOrderValueSwallowsFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.updateErr = errors.New("503")
	r := newReconciler(gw, true)

	// Must not panic or propagate.
	r.SyncOrderValue(context.Background(), 44, decimal.NewFromInt(10))
}
