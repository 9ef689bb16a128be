// Package vies provides the client for the EU VAT validation service.
// The service exposes a single SOAP operation, checkVat, returning a validity
// flag plus free-text company name and address.
package vies

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"expodesk_backend/platform/apperr"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
)

const checkVatNS = "urn:ec.europa.eu:taxud:vies:services:checkVat:types"

// CheckResult is the outcome of a checkVat call.
type CheckResult struct {
	Valid   bool
	Name    string
	Address string
}

// CompanyInfo is a structured view of a valid checkVat response, with the
// free-text address split by the positional parser.
type CompanyInfo struct {
	Name    string
	Street  string
	City    string
	Zip     string
	Country string
	VATID   string
}

// Client calls the VAT validation service.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new VIES client.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		endpoint:   cfg.VIESURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	XmlnsS  string   `xml:"xmlns:soapenv,attr"`
	Body    soapBody `xml:"soapenv:Body"`
}

type soapBody struct {
	CheckVat checkVatRequest
}

type checkVatRequest struct {
	XMLName     xml.Name `xml:"checkVat"`
	Xmlns       string   `xml:"xmlns,attr"`
	CountryCode string   `xml:"countryCode"`
	VATNumber   string   `xml:"vatNumber"`
}

type soapResponseEnvelope struct {
	Body soapResponseBody `xml:"Body"`
}

type soapResponseBody struct {
	CheckVatResponse *checkVatResponse `xml:"checkVatResponse"`
	Fault            *soapFault        `xml:"Fault"`
}

type checkVatResponse struct {
	Valid   bool   `xml:"valid"`
	Name    string `xml:"name"`
	Address string `xml:"address"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	Reason string `xml:"faultstring"`
}

// CheckVAT validates a country code + number pair against the service.
// Transport and service faults come back as upstream errors; callers fall
// back to domestic tax treatment, they never propagate the fault.
func (c *Client) CheckVAT(ctx context.Context, countryCode, number string) (CheckResult, error) {
	envelope := soapEnvelope{
		XmlnsS: "http://schemas.xmlsoap.org/soap/envelope/",
		Body: soapBody{
			CheckVat: checkVatRequest{
				Xmlns:       checkVatNS,
				CountryCode: countryCode,
				VATNumber:   number,
			},
		},
	}

	payload, err := xml.Marshal(envelope)
	if err != nil {
		return CheckResult{}, fmt.Errorf("marshal checkVat request: %w", err)
	}
	payload = append([]byte(xml.Header), payload...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return CheckResult{}, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.RemoteCallError("vies", "checkVat", err)
		return CheckResult{}, apperr.Upstream("VAT validation service unavailable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.RemoteCallError("vies", "checkVat", err)
		return CheckResult{}, apperr.Upstream("VAT validation response unreadable", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		c.log.RemoteCallError("vies", "checkVat", err)
		return CheckResult{}, apperr.Upstream("VAT validation service error", err)
	}

	var decoded soapResponseEnvelope
	if err := xml.Unmarshal(body, &decoded); err != nil {
		c.log.RemoteCallError("vies", "checkVat", err)
		return CheckResult{}, apperr.Upstream("VAT validation response malformed", err)
	}

	if decoded.Body.Fault != nil {
		err := fmt.Errorf("soap fault %s: %s", decoded.Body.Fault.Code, decoded.Body.Fault.Reason)
		c.log.RemoteCallError("vies", "checkVat", err)
		return CheckResult{}, apperr.Upstream("VAT validation service fault", err)
	}

	if decoded.Body.CheckVatResponse == nil {
		err := fmt.Errorf("missing checkVatResponse element")
		c.log.RemoteCallError("vies", "checkVat", err)
		return CheckResult{}, apperr.Upstream("VAT validation response malformed", err)
	}

	r := decoded.Body.CheckVatResponse
	return CheckResult{Valid: r.Valid, Name: r.Name, Address: r.Address}, nil
}

// LookupCompany validates a full tax id and, when valid, returns the parsed
// company details. The second return reports validity; an invalid id is not
// an error.
func (c *Client) LookupCompany(ctx context.Context, vatID string) (*CompanyInfo, bool, error) {
	countryCode, number, ok := SplitVATID(vatID)
	if !ok {
		return nil, false, nil
	}

	result, err := c.CheckVAT(ctx, countryCode, number)
	if err != nil {
		return nil, false, err
	}
	if !result.Valid {
		return nil, false, nil
	}

	street, city, zip := ParseAddress(result.Address)
	return &CompanyInfo{
		Name:    strings.TrimSpace(result.Name),
		Street:  street,
		City:    city,
		Zip:     zip,
		Country: CountryDisplayName(countryCode),
		VATID:   countryCode + number,
	}, true, nil
}
