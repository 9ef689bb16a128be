// Package service implements the quotation workflow: opening a quotation for
// a resolved customer, managing its lines with event price overrides, and
// confirming it with best-effort CRM synchronization.
package service

import (
	"context"
	"fmt"
	"strings"

	crmservice "expodesk_backend/internal/crm/service"
	"expodesk_backend/internal/flow"
	"expodesk_backend/internal/quotations/ports"
	"expodesk_backend/internal/quotations/pricing"
	"expodesk_backend/internal/quotations/repository"
	"expodesk_backend/internal/quotations/transport"
	"expodesk_backend/platform/apperr"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
	"expodesk_backend/platform/sanitize"
)

// Service implements the quotation workflow.
type Service struct {
	repo   repository.Repository
	vat    ports.VATChecker
	crm    ports.ContactReconciler
	tokens flow.Tokens
	prices *pricing.Table
	cfg    *config.Config
	log    *logger.Logger
}

// New creates a quotation service.
func New(repo repository.Repository, vat ports.VATChecker, crm ports.ContactReconciler, tokens flow.Tokens, prices *pricing.Table, cfg *config.Config, log *logger.Logger) *Service {
	return &Service{repo: repo, vat: vat, crm: crm, tokens: tokens, prices: prices, cfg: cfg, log: log}
}

// Create opens a quotation for the customer bound to the flow token, with
// the fiscal position derived from the submitted tax id.
func (s *Service) Create(ctx context.Context, req transport.CreateRequest) (*transport.CreateResponse, error) {
	partnerID, err := s.tokens.Verify(ctx, req.CustomerToken)
	if err != nil {
		return nil, err
	}

	positionID, warning := s.deriveFiscalPosition(ctx, strings.TrimSpace(req.VATID))

	values := map[string]interface{}{
		"partner_id":         partnerID,
		"pricelist_id":       s.cfg.PricelistOrderID,
		"fiscal_position_id": positionID,
		"client_order_ref":   s.cfg.EventTag,
		"team_id":            s.cfg.SalesTeamID,
	}

	orderID, err := s.repo.CreateOrder(ctx, values)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &transport.CreateResponse{
		QuotationID:      orderID,
		Reference:        order.Reference,
		FiscalPositionID: positionID,
		Warning:          warning,
	}, nil
}

// Details returns the quotation header with its lines.
func (s *Service) Details(ctx context.Context, orderID int64) (*transport.Details, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ReadLines(ctx, order.LineIDs)
	if err != nil {
		return nil, err
	}

	details := &transport.Details{
		QuotationID: order.ID,
		Reference:   order.Reference,
		Lines:       make([]transport.Line, 0, len(lines)),
		AmountTotal: order.AmountTotal.StringFixed(2),
	}
	for _, line := range lines {
		details.Lines = append(details.Lines, transport.Line{
			ID:        line.ID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Subtotal:  line.Subtotal.StringFixed(2),
		})
	}
	return details, nil
}

// AddLine adds a product to the quotation by catalog code. Event price
// overrides take precedence over the catalog price; without an override the
// line is created without a unit price and the ERP prices it from the
// quotation's pricelist.
func (s *Service) AddLine(ctx context.Context, orderID int64, req transport.AddLineRequest) (*transport.AddLineResponse, error) {
	code := strings.ToLower(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, apperr.Validation("product code is required")
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	products, err := s.repo.FindProductsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	product, ok := pickProduct(products)
	if !ok {
		return nil, apperr.NotFound("no product matches code " + code)
	}

	values := map[string]interface{}{
		"order_id":        orderID,
		"product_id":      product.ID,
		"product_uom_qty": quantity,
	}

	unitPrice := product.ListPrice
	override, overridden := s.prices.UnitPrice(code)
	if overridden {
		unitPrice = override
		values["price_unit"] = override.InexactFloat64()
	}

	lineID, err := s.repo.CreateLine(ctx, values)
	if err != nil {
		return nil, err
	}

	return &transport.AddLineResponse{
		LineID:      lineID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   unitPrice.StringFixed(2),
		Overridden:  overridden,
	}, nil
}

// RemoveLine deletes a quotation line. The owning order is read first; if
// that read fails the line is left untouched rather than blindly unlinked.
func (s *Service) RemoveLine(ctx context.Context, lineID int64) (int64, error) {
	orderID, err := s.repo.LineOrderID(ctx, lineID)
	if err != nil {
		return 0, err
	}
	if err := s.repo.DeleteLine(ctx, lineID); err != nil {
		return 0, err
	}
	return orderID, nil
}

// Confirm turns the quotation into a confirmed order. The warehouse
// assignment and the CRM synchronization are best-effort; only the order
// confirmation itself can fail the request.
func (s *Service) Confirm(ctx context.Context, orderID int64) (*transport.ConfirmResponse, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.ReadCustomer(ctx, order.PartnerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.WriteOrder(ctx, orderID, map[string]interface{}{"warehouse_id": s.cfg.WarehouseID}); err != nil {
		s.log.RemoteCallError("erp", "assignWarehouse", err)
	}

	// CRM sync runs before the ERP confirmation and must never block it.
	result := s.crm.Reconcile(ctx, crmservice.ContactInput{
		Name:           customer.Name,
		Email:          customer.Email,
		Phone:          firstNonEmpty(customer.Phone, customer.Mobile),
		Company:        firstNonEmpty(customer.CompanyName, customer.Name),
		Classification: s.classificationOf(customer),
	})
	if result.ContactID != 0 {
		s.crm.SyncOrderValue(ctx, result.ContactID, order.AmountTotal)
	}

	if err := s.repo.ConfirmOrder(ctx, orderID); err != nil {
		return nil, err
	}

	return &transport.ConfirmResponse{
		QuotationID: orderID,
		AmountTotal: order.AmountTotal.StringFixed(2),
		CRMStatus:   result.Status,
	}, nil
}

// Annotate posts the picking note on the order, stores the payment terms and
// triggers the confirmation email. The note is optional: an empty one skips
// the chatter post but still records the payment term and sends the email.
// The three steps are independent: a failed one is logged and reported, the
// others still run.
func (s *Service) Annotate(ctx context.Context, orderID int64, req transport.AnnotateRequest) (*transport.AnnotateResponse, error) {
	note := sanitize.Text(req.Note)

	resp := &transport.AnnotateResponse{}

	if note != "" {
		// Oversized red banner so warehouse pickers cannot miss the note.
		body := fmt.Sprintf("<div style='color: red; font-size: 40px;'>%s 👍</div>", note)
		if err := s.repo.PostNote(ctx, orderID, body); err != nil {
			s.log.RemoteCallError("erp", "postNote", err)
		} else {
			resp.NotePosted = true
		}
	}

	paymentTermID := s.cfg.PaymentTermCardID
	if req.PaymentType == transport.PaymentCash {
		paymentTermID = s.cfg.PaymentTermCashID
	}
	values := map[string]interface{}{"note": note, "payment_term_id": paymentTermID}
	if err := s.repo.WriteOrder(ctx, orderID, values); err != nil {
		s.log.RemoteCallError("erp", "writePaymentTerms", err)
	} else {
		resp.TermsSaved = true
	}

	if err := s.repo.SendQuotationEmail(ctx, s.cfg.EmailTemplateID, orderID); err != nil {
		s.log.RemoteCallError("erp", "sendQuotationEmail", err)
	} else {
		resp.EmailSent = true
	}

	return resp, nil
}

// ResendEmail re-triggers the quotation email for an order.
func (s *Service) ResendEmail(ctx context.Context, orderID int64) (*transport.EmailResponse, error) {
	if err := s.repo.SendQuotationEmail(ctx, s.cfg.EmailTemplateID, orderID); err != nil {
		return nil, err
	}
	return &transport.EmailResponse{QuotationID: orderID, Sent: true}, nil
}

// classificationOf recovers the customer classification from the tag ids
// stored on the record. The first recognized tag wins.
func (s *Service) classificationOf(customer *repository.Customer) string {
	for _, tagID := range customer.CategoryIDs {
		if classification, ok := s.cfg.ClassificationForTagID(tagID); ok {
			return classification
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
