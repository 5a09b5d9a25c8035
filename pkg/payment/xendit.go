package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// XenditProvider creates invoices via the Xendit Invoices API. Auth is HTTP
// basic with the secret key as username and an empty password.
type XenditProvider struct {
	BaseURL    string
	SecretKey  string
	SuccessURL string
	client     *http.Client
}

func NewXenditProvider(baseURL, secretKey, successURL string) *XenditProvider {
	if baseURL == "" {
		baseURL = "https://api.xendit.co"
	}
	return &XenditProvider{
		BaseURL:    baseURL,
		SecretKey:  secretKey,
		SuccessURL: successURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type xenditInvoiceReq struct {
	ExternalID         string  `json:"external_id"`
	Amount             float64 `json:"amount"`
	PayerEmail         string  `json:"payer_email,omitempty"`
	Description        string  `json:"description,omitempty"`
	InvoiceDuration    int     `json:"invoice_duration,omitempty"` // seconds
	SuccessRedirectURL string  `json:"success_redirect_url,omitempty"`
	Currency           string  `json:"currency,omitempty"`
}

type xenditInvoiceResp struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoice_url"`
	ExpiryDate string `json:"expiry_date"`
}

func (p *XenditProvider) CreateInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResponse, error) {
	payload := xenditInvoiceReq{
		ExternalID:         req.ExternalID,
		Amount:             float64(req.AmountCents) / 100,
		PayerEmail:         req.PayerEmail,
		Description:        req.Description,
		SuccessRedirectURL: p.SuccessURL,
		Currency:           "IDR",
	}
	if req.ExpiresIn > 0 {
		payload.InvoiceDuration = int(req.ExpiresIn.Seconds())
	}
	body, _ := json.Marshal(payload)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v2/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(p.SecretKey, "")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		log.Printf("[xendit] create invoice failed: status=%d body=%s", resp.StatusCode, string(raw))
		return nil, fmt.Errorf("xendit: create invoice failed: %d", resp.StatusCode)
	}
	var out xenditInvoiceResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	expires, _ := time.Parse(time.RFC3339, out.ExpiryDate)
	return &InvoiceResponse{
		Reference:  out.ID,
		Status:     out.Status,
		InvoiceURL: out.InvoiceURL,
		ExpiresAt:  expires,
	}, nil
}
