// Package transport defines the request/response types of the customers API.
package transport

// SearchRequest looks up a customer by tax id or email.
type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

// CustomerPrefill is the form prefill returned by a search. Source reports
// where the data came from: the ERP, the VAT validation service, or neither.
type CustomerPrefill struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	State   string `json:"state"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	VATID   string `json:"vatId"`
	Source  string `json:"source"`
}

// Prefill sources.
const (
	SourceERP  = "erp"
	SourceVIES = "vies"
	SourceNone = "none"
)

// Country is an ERP country catalog entry for the form's country selector.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchResponse is the outcome of a customer lookup.
type SearchResponse struct {
	Customer      CustomerPrefill `json:"customer"`
	Found         bool            `json:"found"`
	CustomerToken string          `json:"customerToken,omitempty"`
	Countries     []Country       `json:"countries"`
	Warning       string          `json:"warning,omitempty"`
}

// SaveRequest creates or updates a customer record.
type SaveRequest struct {
	Name           string `json:"name" validate:"required,min=1"`
	VATID          string `json:"vatId"`
	Email          string `json:"email"`
	Street         string `json:"street"`
	City           string `json:"city"`
	Zip            string `json:"zip"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Phone          string `json:"phone"`
	Mobile         string `json:"mobile"`
	Classification string `json:"classification"`
}

// SaveResponse reports the resolved customer.
type SaveResponse struct {
	CustomerID    int64  `json:"customerId"`
	Created       bool   `json:"created"`
	CustomerToken string `json:"customerToken"`
}
