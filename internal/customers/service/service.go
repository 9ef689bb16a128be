// Package service resolves booth visitors against the ERP customer base,
// falling back to the EU VAT registry for form prefill when no record exists.
package service

import (
	"context"
	"strings"

	"expodesk_backend/internal/customers/repository"
	"expodesk_backend/internal/customers/transport"
	"expodesk_backend/internal/flow"
	"expodesk_backend/internal/vies"
	"expodesk_backend/platform/apperr"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
	"expodesk_backend/platform/phone"
	"expodesk_backend/platform/sanitize"
)

// VATLookup is the registry lookup used to prefill the form for customers
// the ERP does not know yet.
type VATLookup interface {
	LookupCompany(ctx context.Context, vatID string) (*vies.CompanyInfo, bool, error)
}

// Service implements the customer resolution flow.
type Service struct {
	repo   repository.Repository
	vat    VATLookup
	tokens flow.Tokens
	cfg    *config.Config
	log    *logger.Logger
}

// New creates a customer service.
func New(repo repository.Repository, vat VATLookup, tokens flow.Tokens, cfg *config.Config, log *logger.Logger) *Service {
	return &Service{repo: repo, vat: vat, tokens: tokens, cfg: cfg, log: log}
}

// Search resolves a tax id or email against the ERP. A known customer comes
// back with a flow token; an unknown one gets a registry-based prefill when
// the query validates as an EU tax id. Registry outages degrade to a manual
// form, never to a failed lookup.
func (s *Service) Search(ctx context.Context, query string) (*transport.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("search query is required")
	}

	countries, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.SearchLoose(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		partner, err := s.repo.Read(ctx, ids[0])
		if err != nil {
			return nil, err
		}
		token, err := s.tokens.Issue(ctx, partner.ID)
		if err != nil {
			return nil, apperr.Internal("could not issue customer token")
		}
		return &transport.SearchResponse{
			Customer: transport.CustomerPrefill{
				Name:    partner.Name,
				Street:  partner.Street,
				City:    partner.City,
				Zip:     partner.Zip,
				State:   partner.StateName,
				Country: partner.CountryName,
				Phone:   partner.Phone,
				Mobile:  partner.Mobile,
				Email:   partner.Email,
				VATID:   partner.VATID,
				Source:  transport.SourceERP,
			},
			Found:         true,
			CustomerToken: token,
			Countries:     countries,
		}, nil
	}

	response := &transport.SearchResponse{
		Customer:  transport.CustomerPrefill{VATID: query, Source: transport.SourceNone},
		Countries: countries,
	}

	info, valid, err := s.vat.LookupCompany(ctx, query)
	if err != nil {
		response.Warning = "tax id could not be verified, please fill in the details manually"
		return response, nil
	}
	if !valid {
		response.Warning = "no customer record found for this tax id or email"
		return response, nil
	}

	response.Customer = transport.CustomerPrefill{
		Name:    info.Name,
		Street:  info.Street,
		City:    info.City,
		Zip:     info.Zip,
		State:   info.City,
		Country: info.Country,
		VATID:   info.VATID,
		Source:  transport.SourceVIES,
	}
	return response, nil
}

// Save creates or updates the customer record and binds a flow token to it.
// Matching against existing records uses exact tax id or email equality; a
// match updates every matched record with the submitted data.
func (s *Service) Save(ctx context.Context, req transport.SaveRequest) (*transport.SaveResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	// A walk-in customer may register with only a name and tax id; the email
	// is validated only when one was supplied.
	if email != "" && !sanitize.ValidEmail(email) {
		return nil, apperr.Validation("invalid email address")
	}

	vatID := strings.TrimSpace(req.VATID)
	classTagID := s.cfg.ClassificationTagID(req.Classification)
	tagIDs := partnerTagIDs(s.cfg, req.Classification)

	values := map[string]interface{}{
		"name":                       name,
		"email":                      email,
		"street":                     strings.TrimSpace(req.Street),
		"city":                       strings.TrimSpace(req.City),
		"zip":                        strings.TrimSpace(req.Zip),
		"phone":                      phone.NormalizeE164(req.Phone),
		"mobile":                     phone.NormalizeE164(req.Mobile),
		"category_id":                replaceTagsCommand(tagIDs),
		"property_product_pricelist": pricelistFor(s.cfg, classTagID),
	}

	if persisted, ok := persistableTaxID(vatID); ok {
		values["vat"] = persisted
	} else {
		values["vat"] = false
	}

	if stateID, found, err := s.repo.FindStateID(ctx, strings.TrimSpace(req.State)); err != nil {
		return nil, err
	} else if found {
		values["state_id"] = stateID
	}
	if countryID, found, err := s.repo.FindCountryID(ctx, strings.TrimSpace(req.Country)); err != nil {
		return nil, err
	} else if found {
		values["country_id"] = countryID
	}

	existing, err := s.repo.SearchExact(ctx, vatID, email)
	if err != nil {
		return nil, err
	}

	var customerID int64
	created := false
	if len(existing) > 0 {
		if err := s.repo.Update(ctx, existing, values); err != nil {
			return nil, err
		}
		customerID = existing[0]
	} else {
		customerID, err = s.repo.Create(ctx, values)
		if err != nil {
			return nil, err
		}
		created = true
	}

	token, err := s.tokens.Issue(ctx, customerID)
	if err != nil {
		return nil, apperr.Internal("could not issue customer token")
	}

	return &transport.SaveResponse{CustomerID: customerID, Created: created, CustomerToken: token}, nil
}

// replaceTagsCommand builds the ERP many2many replace command for the tag set.
func replaceTagsCommand(tagIDs []int64) []interface{} {
	ids := make([]interface{}, 0, len(tagIDs))
	for _, id := range tagIDs {
		ids = append(ids, id)
	}
	return []interface{}{[]interface{}{6, 0, ids}}
}
