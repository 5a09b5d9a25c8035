package payment

import (
	"context"
	"fmt"
	"time"
)

// StubProvider is a no-op provider for development without gateway keys.
type StubProvider struct{}

func (s *StubProvider) CreateInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResponse, error) {
	return &InvoiceResponse{
		Reference:  fmt.Sprintf("stub_%d", time.Now().UnixNano()),
		Status:     "PENDING",
		InvoiceURL: "https://example.invalid/checkout/" + req.ExternalID,
		ExpiresAt:  time.Now().Add(req.ExpiresIn),
	}, nil
}
