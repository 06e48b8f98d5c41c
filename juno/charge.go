package juno

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// ChargeRequest describes a boleto charge and its payer.
// Dates use the yyyy-MM-dd layout.
type ChargeRequest struct {
	PayerName      string
	PayerDocument  string // CPF или CNPJ
	PayerEmail     string
	PayerPhone     string
	PayerBirthDate string

	Description    string
	Amount         decimal.Decimal
	DueDate        string
	MaxOverdueDays int
	Fine           decimal.Decimal
	Interest       decimal.Decimal

	// Discount fields are sent only when DiscountAmount is positive.
	DiscountAmount decimal.Decimal
	DiscountDays   int
}

type chargeBody struct {
	Charge  chargeFields  `json:"charge"`
	Billing billingFields `json:"billing"`
}

type chargeFields struct {
	Description    string      `json:"description"`
	Amount         json.Number `json:"amount"`
	DueDate        string      `json:"dueDate"`
	MaxOverdueDays int         `json:"maxOverdueDays"`
	Fine           json.Number `json:"fine"`
	Interest       json.Number `json:"interest"`
	DiscountAmount json.Number `json:"discountAmount,omitempty"`
	DiscountDays   *int        `json:"discountDays,omitempty"`
}

type billingFields struct {
	Name      string `json:"name"`
	Document  string `json:"document"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
}

func (r ChargeRequest) body() chargeBody {
	b := chargeBody{
		Charge: chargeFields{
			Description:    r.Description,
			Amount:         number(r.Amount),
			DueDate:        r.DueDate,
			MaxOverdueDays: r.MaxOverdueDays,
			Fine:           number(r.Fine),
			Interest:       number(r.Interest),
		},
		Billing: billingFields{
			Name:      r.PayerName,
			Document:  r.PayerDocument,
			Email:     r.PayerEmail,
			Phone:     r.PayerPhone,
			BirthDate: r.PayerBirthDate,
		},
	}

	if r.DiscountAmount.IsPositive() {
		days := r.DiscountDays
		b.Charge.DiscountAmount = number(r.DiscountAmount)
		b.Charge.DiscountDays = &days
	}

	return b
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func (c *Client) CreateCharge(ctx context.Context, r ChargeRequest) (*Response, error) {
	return c.do(ctx, http.MethodPost, "charges", r.body())
}

func (c *Client) FetchCharge(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "charges/"+url.PathEscape(id), nil)
}

func (c *Client) CancelCharge(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodPut, "charges/"+url.PathEscape(id)+"/cancelation", nil)
}

// FetchPaymentDetails resolves a payment token produced by the card checkout.
func (c *Client) FetchPaymentDetails(ctx context.Context, paymentToken string) (*Response, error) {
	body := struct {
		PaymentToken string `json:"paymentToken"`
	}{paymentToken}

	return c.do(ctx, http.MethodPost, "fetch-payment-details", body)
}
