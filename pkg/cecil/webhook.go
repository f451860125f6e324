package cecil

import (
	"context"
	"net/http"
	"net/url"
)

type createWebhookRequest struct {
	URL string `json:"URL"`
}

// CreateWebhook registers a callback endpoint for platform events.
func (c *Client) CreateWebhook(ctx context.Context, callbackURL string) (*Webhook, error) {
	var w Webhook
	body := createWebhookRequest{URL: callbackURL}
	if err := c.do(ctx, http.MethodPost, "/webhooks", body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// GetWebhook fetches one webhook.
func (c *Client) GetWebhook(ctx context.Context, id string) (*Webhook, error) {
	if err := requireID("get webhook", id); err != nil {
		return nil, err
	}
	var w Webhook
	if err := c.do(ctx, http.MethodGet, "/webhooks/"+url.PathEscape(id), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// ListWebhooks fetches all webhooks for the organisation.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	return list[Webhook](ctx, c, "/webhooks")
}

// DeleteWebhook removes a webhook registration.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	if err := requireID("delete webhook", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/webhooks/"+url.PathEscape(id), nil, nil)
}
