// Package repository provides quotation data access against the ERP sales
// models.
package repository

import (
	"context"

	"expodesk_backend/internal/erp"
	"expodesk_backend/platform/apperr"

	"github.com/shopspring/decimal"
)

// Order is a quotation header.
type Order struct {
	ID          int64
	Reference   string
	PartnerID   int64
	AmountTotal decimal.Decimal
	LineIDs     []int64
}

// Line is a quotation line.
type Line struct {
	ID        int64
	Name      string
	Quantity  float64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Product is a sellable catalog entry.
type Product struct {
	ID        int64
	Name      string
	Code      string
	ListPrice decimal.Decimal
}

// Customer is the slice of the partner record the confirmation flow needs.
type Customer struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Mobile      string
	CompanyName string
	CategoryIDs []int64
}

// Repository is the quotation data access surface.
type Repository interface {
	CreateOrder(ctx context.Context, values map[string]interface{}) (int64, error)
	ReadOrder(ctx context.Context, orderID int64) (*Order, error)
	ReadLines(ctx context.Context, lineIDs []int64) ([]Line, error)
	FindProductsByCode(ctx context.Context, code string) ([]Product, error)
	CreateLine(ctx context.Context, values map[string]interface{}) (int64, error)
	LineOrderID(ctx context.Context, lineID int64) (int64, error)
	DeleteLine(ctx context.Context, lineID int64) error
	WriteOrder(ctx context.Context, orderID int64, values map[string]interface{}) error
	ConfirmOrder(ctx context.Context, orderID int64) error
	PostNote(ctx context.Context, orderID int64, body string) error
	SendQuotationEmail(ctx context.Context, templateID, orderID int64) error
	ReadCustomer(ctx context.Context, partnerID int64) (*Customer, error)
}

type erpRepository struct {
	gateway erp.Executor
}

// New creates an ERP-backed quotation repository.
func New(gateway erp.Executor) Repository {
	return &erpRepository{gateway: gateway}
}

func (r *erpRepository) CreateOrder(ctx context.Context, values map[string]interface{}) (int64, error) {
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order", "create", []interface{}{values}, nil)
	if err != nil {
		return 0, err
	}
	orderID, ok := erp.AsID(reply)
	if !ok || orderID == 0 {
		return 0, apperr.Upstream("quotation creation returned no id", nil)
	}
	return orderID, nil
}

func (r *erpRepository) ReadOrder(ctx context.Context, orderID int64) (*Order, error) {
	args := []interface{}{[]interface{}{orderID}, []interface{}{"name", "partner_id", "amount_total", "order_line"}}
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order", "read", args, nil)
	if err != nil {
		return nil, err
	}

	record, ok := erp.FirstRecord(reply)
	if !ok {
		return nil, apperr.NotFound("quotation not found")
	}

	order := &Order{
		ID:          orderID,
		Reference:   erp.AsString(record, "name"),
		AmountTotal: decimal.NewFromFloat(erp.AsFloat(record, "amount_total")),
		LineIDs:     erp.AsIDList(record["order_line"]),
	}
	if partnerID, _, ok := erp.Many2One(record, "partner_id"); ok {
		order.PartnerID = partnerID
	}
	return order, nil
}

func (r *erpRepository) ReadLines(ctx context.Context, lineIDs []int64) ([]Line, error) {
	if len(lineIDs) == 0 {
		return nil, nil
	}

	ids := make([]interface{}, 0, len(lineIDs))
	for _, id := range lineIDs {
		ids = append(ids, id)
	}
	args := []interface{}{ids, []interface{}{"name", "product_uom_qty", "price_unit", "price_subtotal"}}
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order.line", "read", args, nil)
	if err != nil {
		return nil, err
	}

	records := erp.AsRecords(reply)
	lines := make([]Line, 0, len(records))
	for _, record := range records {
		id, ok := erp.AsID(record["id"])
		if !ok {
			continue
		}
		lines = append(lines, Line{
			ID:        id,
			Name:      erp.AsString(record, "name"),
			Quantity:  erp.AsFloat(record, "product_uom_qty"),
			UnitPrice: decimal.NewFromFloat(erp.AsFloat(record, "price_unit")),
			Subtotal:  decimal.NewFromFloat(erp.AsFloat(record, "price_subtotal")),
		})
	}
	return lines, nil
}

func (r *erpRepository) FindProductsByCode(ctx context.Context, code string) ([]Product, error) {
	domain := []interface{}{[]interface{}{"default_code", "ilike", code}}
	args := []interface{}{domain, []interface{}{"name", "default_code", "list_price"}}
	reply, err := r.gateway.ExecuteKw(ctx, "product.product", "search_read", args, nil)
	if err != nil {
		return nil, err
	}

	records := erp.AsRecords(reply)
	products := make([]Product, 0, len(records))
	for _, record := range records {
		id, ok := erp.AsID(record["id"])
		if !ok {
			continue
		}
		products = append(products, Product{
			ID:        id,
			Name:      erp.AsString(record, "name"),
			Code:      erp.AsString(record, "default_code"),
			ListPrice: decimal.NewFromFloat(erp.AsFloat(record, "list_price")),
		})
	}
	return products, nil
}

func (r *erpRepository) CreateLine(ctx context.Context, values map[string]interface{}) (int64, error) {
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order.line", "create", []interface{}{values}, nil)
	if err != nil {
		return 0, err
	}
	lineID, ok := erp.AsID(reply)
	if !ok || lineID == 0 {
		return 0, apperr.Upstream("quotation line creation returned no id", nil)
	}
	return lineID, nil
}

func (r *erpRepository) LineOrderID(ctx context.Context, lineID int64) (int64, error) {
	args := []interface{}{[]interface{}{lineID}, []interface{}{"order_id"}}
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order.line", "read", args, nil)
	if err != nil {
		return 0, err
	}

	record, ok := erp.FirstRecord(reply)
	if !ok {
		return 0, apperr.NotFound("quotation line not found")
	}
	orderID, _, ok := erp.Many2One(record, "order_id")
	if !ok {
		return 0, apperr.NotFound("quotation line not found")
	}
	return orderID, nil
}

func (r *erpRepository) DeleteLine(ctx context.Context, lineID int64) error {
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order.line", "unlink", []interface{}{[]interface{}{lineID}}, nil)
	if err != nil {
		return err
	}
	if !erp.AsBool(reply) {
		return apperr.Upstream("quotation line deletion rejected", nil)
	}
	return nil
}

func (r *erpRepository) WriteOrder(ctx context.Context, orderID int64, values map[string]interface{}) error {
	reply, err := r.gateway.ExecuteKw(ctx, "sale.order", "write", []interface{}{[]interface{}{orderID}, values}, nil)
	if err != nil {
		return err
	}
	if !erp.AsBool(reply) {
		return apperr.Upstream("quotation update rejected", nil)
	}
	return nil
}

func (r *erpRepository) ConfirmOrder(ctx context.Context, orderID int64) error {
	_, err := r.gateway.ExecuteKw(ctx, "sale.order", "action_confirm", []interface{}{[]interface{}{orderID}}, nil)
	return err
}

func (r *erpRepository) PostNote(ctx context.Context, orderID int64, body string) error {
	kw := map[string]interface{}{
		"body":          body,
		"message_type":  "comment",
		"subtype_xmlid": "mail.mt_note",
	}
	_, err := r.gateway.ExecuteKw(ctx, "sale.order", "message_post", []interface{}{[]interface{}{orderID}}, kw)
	return err
}

func (r *erpRepository) SendQuotationEmail(ctx context.Context, templateID, orderID int64) error {
	kw := map[string]interface{}{"force_send": true}
	_, err := r.gateway.ExecuteKw(ctx, "mail.template", "send_mail", []interface{}{templateID, orderID}, kw)
	return err
}

func (r *erpRepository) ReadCustomer(ctx context.Context, partnerID int64) (*Customer, error) {
	args := []interface{}{[]interface{}{partnerID}, []interface{}{"name", "email", "phone", "mobile", "commercial_company_name", "category_id"}}
	reply, err := r.gateway.ExecuteKw(ctx, "res.partner", "read", args, nil)
	if err != nil {
		return nil, err
	}

	record, ok := erp.FirstRecord(reply)
	if !ok {
		return nil, apperr.NotFound("customer not found")
	}

	return &Customer{
		ID:          partnerID,
		Name:        erp.AsString(record, "name"),
		Email:       erp.AsString(record, "email"),
		Phone:       erp.AsString(record, "phone"),
		Mobile:      erp.AsString(record, "mobile"),
		CompanyName: erp.AsString(record, "commercial_company_name"),
		CategoryIDs: erp.AsIDList(record["category_id"]),
	}, nil
}
