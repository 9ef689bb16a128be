// Package transport defines the request/response types of the quotations API.
package transport

// CreateRequest opens a quotation for the customer bound to the flow token.
type CreateRequest struct {
	VATID         string `json:"vatId"`
	CustomerToken string `json:"customerToken" validate:"required"`
}

// CreateResponse reports the new quotation. Warning is set when domestic tax
// treatment was applied as a fallback, either because the tax id failed
// registry validation or because the registry could not be reached.
type CreateResponse struct {
	QuotationID      int64  `json:"quotationId"`
	Reference        string `json:"reference"`
	FiscalPositionID int64  `json:"fiscalPositionId"`
	Warning          string `json:"warning,omitempty"`
}

// AddLineRequest adds a product to a quotation by its catalog code.
type AddLineRequest struct {
	Code     string  `json:"code" validate:"required,min=1"`
	Quantity float64 `json:"quantity"`
}

// AddLineResponse reports the created line.
type AddLineResponse struct {
	LineID      int64  `json:"lineId"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	UnitPrice   string `json:"unitPrice"`
	Overridden  bool   `json:"overridden"`
}

// Line is a quotation line in the details view.
type Line struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice string  `json:"unitPrice"`
	Subtotal  string  `json:"subtotal"`
}

// Details is the full quotation view.
type Details struct {
	QuotationID int64  `json:"quotationId"`
	Reference   string `json:"reference"`
	Lines       []Line `json:"lines"`
	AmountTotal string `json:"amountTotal"`
}

// ConfirmResponse reports a confirmed order and the CRM synchronization
// outcome. CRMStatus is informational; a failed sync never blocks the order.
type ConfirmResponse struct {
	QuotationID int64  `json:"quotationId"`
	AmountTotal string `json:"amountTotal"`
	CRMStatus   string `json:"crmStatus"`
}

// Payment types accepted at the booth.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// AnnotateRequest records the payment type and an optional picking note and
// triggers the confirmation email.
type AnnotateRequest struct {
	Note        string `json:"note"`
	PaymentType string `json:"paymentType" validate:"required,oneof=cash card"`
}

// AnnotateResponse reports which of the three annotation steps succeeded.
type AnnotateResponse struct {
	NotePosted bool `json:"notePosted"`
	TermsSaved bool `json:"termsSaved"`
	EmailSent  bool `json:"emailSent"`
}

// EmailResponse reports a resent quotation email.
type EmailResponse struct {
	QuotationID int64 `json:"quotationId"`
	Sent        bool  `json:"sent"`
}
