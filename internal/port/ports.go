// Package port defines the interfaces (ports) the webhook receiver depends on.
// Following hexagonal architecture, these ports decouple the HTTP layer from
// the API client and from whatever consumes the events.
package port

import (
	"context"
	"encoding/json"

	"github.com/boddenberg/tochka-go/internal/domain"
)

// TokenVerifier checks a signed webhook token and returns its claims JSON.
// Implemented by client.Client.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) ([]byte, error)
}

// WebhookSink consumes verified webhook events.
type WebhookSink interface {
	// AcquiringPayment receives acquiringInternetPayment events.
	AcquiringPayment(ctx context.Context, claims domain.AcquiringClaims) error
	// Event receives every other webhook type with its raw claims.
	Event(ctx context.Context, webhookType domain.WebhookType, claims json.RawMessage) error
}

// ReplayGuard detects repeated deliveries of the same token.
// Implemented by cache.ReplayGuard.
type ReplayGuard interface {
	First(token string) bool
	Forget(token string)
}
