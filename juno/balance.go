package juno

import (
	"context"
	"net/http"
)

type resourceBody struct {
	Token string `json:"token"`
}

// FetchBalance returns the balance of the account owning the resource token.
func (c *Client) FetchBalance(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, "fetch-balance", resourceBody{Token: c.cfg.ResourceToken})
}

// RequestTransfer asks Juno to transfer the available balance to the
// account's registered bank account.
func (c *Client) RequestTransfer(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPost, "request-transfer", resourceBody{Token: c.cfg.ResourceToken})
}
