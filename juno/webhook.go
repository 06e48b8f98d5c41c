package juno

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type webhookBody struct {
	URL        string   `json:"url" validate:"required,url"`
	EventTypes []string `json:"eventTypes" validate:"required,min=1,dive,required"`
}

// CreateWebhook subscribes url to the given event types. The response
// carries the secret used to sign deliveries, see VerifySignature.
func (c *Client) CreateWebhook(ctx context.Context, hookURL string, eventTypes []string) (*Response, error) {
	body := webhookBody{URL: hookURL, EventTypes: eventTypes}
	if err := validate.Struct(body); err != nil {
		return nil, fmt.Errorf("%w: webhook: %v", ErrInvalidRequest, err)
	}

	return c.do(ctx, http.MethodPost, "notifications/webhooks", body)
}

func (c *Client) FetchWebhooks(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "notifications/webhooks", nil)
}

// DeleteWebhook removes a subscription with DELETE. Older clients reached
// this path with a bodiless GET; use Request for that behaviour.
func (c *Client) DeleteWebhook(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "notifications/webhooks/"+url.PathEscape(id), nil)
}
