// Package flow issues the short-lived correlation token that carries the
// currently resolved ERP customer across the multi-step booth flow. It
// replaces cookie-session storage: the token is stateless, signed, and
// scoped to a single customer visit.
package flow

import (
	"context"
	"errors"
	"strconv"
	"time"

	"expodesk_backend/platform/apperr"

	"github.com/golang-jwt/jwt/v5"
)

const tokenType = "customer_flow"

// Tokens describes the issue/verify surface consumed by the HTTP modules.
type Tokens interface {
	Issue(ctx context.Context, customerID int64) (string, error)
	Verify(ctx context.Context, token string) (int64, error)
}

// Manager signs and verifies customer flow tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a token bound to the given ERP customer id.
func (m *Manager) Issue(ctx context.Context, customerID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(customerID, 10),
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses a token and returns the customer id it is bound to.
func (m *Manager) Verify(ctx context.Context, rawToken string) (int64, error) {
	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, apperr.Unauthorized("invalid customer token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.Unauthorized("invalid customer token")
	}
	if claimedType, _ := claims["type"].(string); claimedType != tokenType {
		return 0, apperr.Unauthorized("invalid customer token")
	}

	subject, _ := claims["sub"].(string)
	customerID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || customerID <= 0 {
		return 0, apperr.Unauthorized("invalid customer token")
	}

	return customerID, nil
}
