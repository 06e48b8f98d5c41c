package juno

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

const maxNotificationBytes = 1 << 20

type ChargeHTTPRequest struct {
	PayerName      string `json:"payerName"`
	PayerDocument  string `json:"payerDocument"`
	PayerEmail     string `json:"payerEmail"`
	PayerPhone     string `json:"payerPhone"`
	PayerBirthDate string `json:"payerBirthDate"`

	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        string          `json:"dueDate"`
	MaxOverdueDays int             `json:"maxOverdueDays"`
	Fine           decimal.Decimal `json:"fine"`
	Interest       decimal.Decimal `json:"interest"`

	DiscountAmount decimal.Decimal `json:"discountAmount"`
	DiscountDays   int             `json:"discountDays"`
}

// ChargeHandler creates a charge from a JSON body and relays Juno's reply as is.
func ChargeHandler(c *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChargeHTTPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := c.CreateCharge(r.Context(), ChargeRequest(req))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
	}
}

// NotificationHandler accepts webhook deliveries. When secret is empty the
// signature is not checked.
func NotificationHandler(secret string, fn func(context.Context, *Notification) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxNotificationBytes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}

		if secret != "" {
			if err := VerifySignature(body, r.Header.Get(SignatureHeader), secret); err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
		}

		n, err := ParseNotification(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := fn(r.Context(), n); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrInvalidRequest) {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
