package payment

import (
	"context"
	"time"
)

type InvoiceRequest struct {
	ExternalID  string // our reference; echoed back by the webhook
	AmountCents int64
	PayerEmail  string
	Description string
	SuccessURL  string
	ExpiresIn   time.Duration
}

type InvoiceResponse struct {
	Reference  string // gateway invoice ID
	Status     string
	InvoiceURL string // checkout page the client is sent to
	ExpiresAt  time.Time
}

// Provider creates checkout invoices; payment confirmation arrives
// asynchronously on the webhook endpoint.
type Provider interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResponse, error)
}
