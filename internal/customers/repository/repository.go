// Package repository provides customer data access against the ERP.
package repository

import (
	"context"
	"strings"

	"expodesk_backend/internal/customers/transport"
	"expodesk_backend/internal/erp"
	"expodesk_backend/platform/apperr"
)

// Partner is a customer record as stored in the ERP.
type Partner struct {
	ID          int64
	Name        string
	Street      string
	City        string
	Zip         string
	StateName   string
	CountryName string
	Phone       string
	Mobile      string
	Email       string
	VATID       string
	CategoryIDs []int64
}

// Repository is the customer data access surface.
type Repository interface {
	// SearchLoose finds partners whose tax id or email contains the query.
	SearchLoose(ctx context.Context, query string) ([]int64, error)
	// SearchExact finds partners whose tax id or email equals the given values.
	SearchExact(ctx context.Context, taxID, email string) ([]int64, error)
	Read(ctx context.Context, partnerID int64) (*Partner, error)
	Create(ctx context.Context, values map[string]interface{}) (int64, error)
	Update(ctx context.Context, partnerIDs []int64, values map[string]interface{}) error
	FindStateID(ctx context.Context, name string) (int64, bool, error)
	FindCountryID(ctx context.Context, name string) (int64, bool, error)
	ListCountries(ctx context.Context) ([]transport.Country, error)
}

type erpRepository struct {
	gateway erp.Executor
}

// New creates an ERP-backed customer repository.
func New(gateway erp.Executor) Repository {
	return &erpRepository{gateway: gateway}
}

func (r *erpRepository) SearchLoose(ctx context.Context, query string) ([]int64, error) {
	domain := []interface{}{
		"|",
		[]interface{}{"vat", "ilike", query},
		[]interface{}{"email", "ilike", query},
	}
	reply, err := r.gateway.ExecuteKw(ctx, "res.partner", "search", []interface{}{domain}, nil)
	if err != nil {
		return nil, err
	}
	return erp.AsIDList(reply), nil
}

func (r *erpRepository) SearchExact(ctx context.Context, taxID, email string) ([]int64, error) {
	domain := []interface{}{
		"|",
		[]interface{}{"vat", "=", taxID},
		[]interface{}{"email", "=", email},
	}
	reply, err := r.gateway.ExecuteKw(ctx, "res.partner", "search", []interface{}{domain}, nil)
	if err != nil {
		return nil, err
	}
	return erp.AsIDList(reply), nil
}

func (r *erpRepository) Read(ctx context.Context, partnerID int64) (*Partner, error) {
	reply, err := r.gateway.ExecuteKw(ctx, "res.partner", "read", []interface{}{[]interface{}{partnerID}}, nil)
	if err != nil {
		return nil, err
	}

	record, ok := erp.FirstRecord(reply)
	if !ok {
		return nil, apperr.NotFound("customer not found")
	}

	partner := &Partner{
		ID:     partnerID,
		Name:   erp.AsString(record, "name"),
		Street: erp.AsString(record, "street"),
		City:   erp.AsString(record, "city"),
		Zip:    erp.AsString(record, "zip"),
		Phone:  erp.AsString(record, "phone"),
		Mobile: erp.AsString(record, "mobile"),
		Email:  erp.AsString(record, "email"),
		VATID:  erp.AsString(record, "vat"),
	}

	// The state display carries a trailing country suffix, e.g. "Madrid (ES)".
	if _, display, ok := erp.Many2One(record, "state_id"); ok {
		partner.StateName = strings.SplitN(display, " (", 2)[0]
	}
	if _, display, ok := erp.Many2One(record, "country_id"); ok {
		partner.CountryName = display
	}
	partner.CategoryIDs = erp.AsIDList(record["category_id"])

	return partner, nil
}

func (r *erpRepository) Create(ctx context.Context, values map[string]interface{}) (int64, error) {
	reply, err := r.gateway.ExecuteKw(ctx, "res.partner", "create", []interface{}{values}, nil)
	if err != nil {
		return 0, err
	}
	partnerID, ok := erp.AsID(reply)
	if !ok || partnerID == 0 {
		return 0, apperr.Upstream("customer creation returned no id", nil)
	}
	return partnerID, nil
}

func (r *erpRepository) Update(ctx context.Context, partnerIDs []int64, values map[string]interface{}) error {
	ids := make([]interface{}, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		ids = append(ids, id)
	}
	reply, err := r.gateway.ExecuteKw(ctx, "res.partner", "write", []interface{}{ids, values}, nil)
	if err != nil {
		return err
	}
	if !erp.AsBool(reply) {
		return apperr.Upstream("customer update rejected", nil)
	}
	return nil
}

func (r *erpRepository) FindStateID(ctx context.Context, name string) (int64, bool, error) {
	return r.findByName(ctx, "res.country.state", name)
}

func (r *erpRepository) FindCountryID(ctx context.Context, name string) (int64, bool, error) {
	return r.findByName(ctx, "res.country", name)
}

func (r *erpRepository) findByName(ctx context.Context, model, name string) (int64, bool, error) {
	if strings.TrimSpace(name) == "" {
		return 0, false, nil
	}
	domain := []interface{}{[]interface{}{"name", "=", name}}
	reply, err := r.gateway.ExecuteKw(ctx, model, "search", []interface{}{domain}, map[string]interface{}{"limit": 1})
	if err != nil {
		return 0, false, err
	}
	ids := erp.AsIDList(reply)
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *erpRepository) ListCountries(ctx context.Context) ([]transport.Country, error) {
	args := []interface{}{[]interface{}{}, []interface{}{"name"}}
	reply, err := r.gateway.ExecuteKw(ctx, "res.country", "search_read", args, map[string]interface{}{"limit": 999})
	if err != nil {
		return nil, err
	}

	records := erp.AsRecords(reply)
	countries := make([]transport.Country, 0, len(records))
	for _, record := range records {
		id, ok := erp.AsID(record["id"])
		if !ok {
			continue
		}
		countries = append(countries, transport.Country{ID: id, Name: erp.AsString(record, "name")})
	}
	return countries, nil
}
