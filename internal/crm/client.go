// Package crm provides the HTTP client for the CRM contacts API.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"expodesk_backend/internal/crm/transport"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"
)

// Client is the HTTP client for the CRM API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new CRM API client.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.CRMBaseURL, "/"),
		apiKey:     cfg.CRMAPIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// SearchContacts queries contacts by email substring match.
func (c *Client) SearchContacts(ctx context.Context, email string) ([]transport.Contact, error) {
	reqURL := fmt.Sprintf("%s/contacts/?search=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.RemoteCallError("crm", "search contacts", err)
		return nil, fmt.Errorf("crm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("search contacts", resp)
	}

	var decoded transport.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.RemoteCallError("crm", "search contacts", err)
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return decoded.Results, nil
}

// CreateContact creates a new contact and returns its id.
func (c *Client) CreateContact(ctx context.Context, contact transport.NewContact) (int64, error) {
	body, err := json.Marshal(contact)
	if err != nil {
		return 0, fmt.Errorf("marshal contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts/", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.RemoteCallError("crm", "create contact", err)
		return 0, fmt.Errorf("crm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, c.statusError("create contact", resp)
	}

	var created transport.Contact
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		c.log.RemoteCallError("crm", "create contact", err)
		return 0, fmt.Errorf("decode create response: %w", err)
	}

	return created.ID, nil
}

// UpdateContact applies a partial update to an existing contact.
func (c *Client) UpdateContact(ctx context.Context, contactID int64, patch transport.ContactPatch) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}

	reqURL := fmt.Sprintf("%s/contacts/%d/", c.baseURL, contactID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.RemoteCallError("crm", "update contact", err)
		return fmt.Errorf("crm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.statusError("update contact", resp)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

func (c *Client) statusError(operation string, resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	err := fmt.Errorf("crm returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	c.log.RemoteCallError("crm", operation, err)
	return err
}
