// Package transport defines the wire types exchanged with the CRM API.
package transport

// Contact is a CRM contact as returned by the contacts endpoints.
type Contact struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Company       string   `json:"company"`
	Tags          []string `json:"tags"`
	ContactSource string   `json:"contact_source"`
	ContactType   string   `json:"contact_type"`
}

// SearchResponse wraps a contact search result page.
type SearchResponse struct {
	Results []Contact `json:"results"`
}

// NewContact is the creation payload for a contact.
type NewContact struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Company       string   `json:"company"`
	Tags          []string `json:"tags"`
	ContactSource string   `json:"contact_source"`
	ContactType   string   `json:"contact_type,omitempty"`
}

// ContactPatch is a partial update for an existing contact.
type ContactPatch struct {
	Tags          []string      `json:"tags,omitempty"`
	ContactSource string        `json:"contact_source,omitempty"`
	ContactType   string        `json:"contact_type,omitempty"`
	CustomFields  []CustomField `json:"custom_fields,omitempty"`
}

// CustomField is a single CRM custom field value.
type CustomField struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
}
