package client

import (
	"context"
	"net/http"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/validation"
)

// webhookPath returns the application's webhook resource, or ErrConfig when
// no client id is configured.
func (c *Client) webhookPath(suffix string) (string, error) {
	if c.cfg.ClientID == "" {
		return "", &domain.ErrConfig{Message: "client id is required for webhook operations"}
	}
	return c.cfg.ClientID + suffix, nil
}

// CreateWebhook subscribes the application's URL to webhook types.
func (c *Client) CreateWebhook(ctx context.Context, webhook domain.Webhook) (*domain.Data[domain.Webhook], error) {
	return c.putWebhook(ctx, "CreateWebhook", http.MethodPut, webhook)
}

// EditWebhook replaces the existing subscription.
func (c *Client) EditWebhook(ctx context.Context, webhook domain.Webhook) (*domain.Data[domain.Webhook], error) {
	return c.putWebhook(ctx, "EditWebhook", http.MethodPost, webhook)
}

func (c *Client) putWebhook(ctx context.Context, op, method string, webhook domain.Webhook) (*domain.Data[domain.Webhook], error) {
	path, err := c.webhookPath("")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(webhook); err != nil {
		return nil, err
	}
	// The webhook resource takes the subscription unwrapped.
	return call[domain.Data[domain.Webhook]](ctx, c, op, method, ServiceWebhook, path, nil, webhook)
}

// GetWebhooks returns the current subscription.
func (c *Client) GetWebhooks(ctx context.Context) (*domain.Data[domain.Webhook], error) {
	path, err := c.webhookPath("")
	if err != nil {
		return nil, err
	}
	return call[domain.Data[domain.Webhook]](ctx, c, "GetWebhooks", http.MethodGet, ServiceWebhook, path, nil, nil)
}

// DeleteWebhook removes the subscription.
func (c *Client) DeleteWebhook(ctx context.Context) (*domain.Data[domain.ResultBody], error) {
	path, err := c.webhookPath("")
	if err != nil {
		return nil, err
	}
	return call[domain.Data[domain.ResultBody]](ctx, c, "DeleteWebhook", http.MethodDelete, ServiceWebhook, path, nil, nil)
}

// SendTestWebhook asks the bank to deliver a sample event of webhookType.
func (c *Client) SendTestWebhook(ctx context.Context, webhookType domain.WebhookType) (*domain.Data[domain.ResultBody], error) {
	path, err := c.webhookPath("/test_send")
	if err != nil {
		return nil, err
	}
	body := domain.TestWebhook{WebhookType: webhookType}
	return call[domain.Data[domain.ResultBody]](ctx, c, "SendTestWebhook", http.MethodPost, ServiceWebhook, path, nil, body)
}
