package vies

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"expodesk_backend/platform/apperr"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
)

const checkVatOK = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Body>
    <ns2:checkVatResponse xmlns:ns2="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <ns2:countryCode>PT</ns2:countryCode>
      <ns2:vatNumber>123456789</ns2:vatNumber>
      <ns2:valid>true</ns2:valid>
      <ns2:name>FLORES LDA</ns2:name>
      <ns2:address>RUA DAS FLORES 12
LISBOA
1200-195 LISBOA</ns2:address>
    </ns2:checkVatResponse>
  </env:Body>
</env:Envelope>`

const checkVatInvalid = `<?xml version="1.0" encoding="UTF-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Body>
    <ns2:checkVatResponse xmlns:ns2="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
      <ns2:valid>false</ns2:valid>
      <ns2:name>---</ns2:name>
      <ns2:address>---</ns2:address>
    </ns2:checkVatResponse>
  </env:Body>
</env:Envelope>`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	cfg := &config.Config{VIESURL: server.URL}
	return NewClient(cfg, logger.New("development")), server
}

func TestCheckVATDecodesValidResponse(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(checkVatOK))
	})
	defer server.Close()

	result, err := client.CheckVAT(context.Background(), "PT", "123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatal("expected valid result")
	}
	if result.Name != "FLORES LDA" {
		t.Fatalf("unexpected name %q", result.Name)
	}
}

func TestLookupCompanyParsesAddress(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(checkVatOK))
	})
	defer server.Close()

	info, valid, err := client.LookupCompany(context.Background(), "pt123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("expected valid lookup")
	}
	if info.Street != "RUA DAS FLORES 12" || info.City != "LISBOA" || info.Zip != "1200-195" {
		t.Fatalf("unexpected address parse: %+v", info)
	}
	if info.Country != "Portugal" {
		t.Fatalf("unexpected country %q", info.Country)
	}
	if info.VATID != "PT123456789" {
		t.Fatalf("unexpected vat id %q", info.VATID)
	}
}

func TestLookupCompanyInvalidID(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(checkVatInvalid))
	})
	defer server.Close()

	info, valid, err := client.LookupCompany(context.Background(), "XX00000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid || info != nil {
		t.Fatal("expected invalid lookup")
	}
}

func TestCheckVATUpstreamError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	_, err := client.CheckVAT(context.Background(), "ES", "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
