// Package paystack implements ports.PaymentGateway against the Paystack
// transaction API. Amounts cross this boundary in major units and come back
// in minor units; the conversion happens exactly once, at initialize.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"wallet-funding-service/config"
	"wallet-funding-service/internal/core/domain"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/pkg/apperror"

	"github.com/rs/zerolog"
)

const providerName = "paystack"

// Client calls the Paystack transaction API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Paystack client from config.
func New(cfg config.PaystackConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With().Str("gateway", providerName).Logger(),
	}
}

// Initialize starts a hosted checkout session. params.Amount is in major
// units; Paystack expects minor units, so the amount is scaled here and
// nowhere else.
func (c *Client) Initialize(ctx context.Context, params ports.InitializePaymentParams) (*ports.PaymentIntent, error) {
	body := initializeRequest{
		Email:    params.Email,
		Amount:   domain.MajorToMinor(params.Amount),
		Metadata: metadata{FullName: params.FullName},
	}

	var result Response[initializeData]
	if err := c.post(ctx, "/transaction/initialize", body, &result); err != nil {
		return nil, err
	}
	if !result.Status {
		return nil, apperror.ErrGateway(providerName, fmt.Errorf("initialize rejected: %s", result.Message))
	}

	c.log.Debug().
		Str("reference", result.Data.Reference).
		Msg("payment initialized")

	return &ports.PaymentIntent{
		AuthorizationURL: result.Data.AuthorizationURL,
		AccessCode:       result.Data.AccessCode,
		Reference:        result.Data.Reference,
	}, nil
}

// Verify asks Paystack for the settled state of a reference. The returned
// status is passed through literally; classification into credit or no-credit
// happens in the service layer.
func (c *Client) Verify(ctx context.Context, reference string) (*ports.VerifiedPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ErrGateway(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.ErrReferenceNotResolved(reference)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.ErrGateway(providerName, fmt.Errorf("verify returned status %d", resp.StatusCode))
	}

	var result Response[verifyData]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperror.ErrGateway(providerName, fmt.Errorf("decode verify response: %w", err))
	}
	if !result.Status {
		return nil, apperror.ErrReferenceNotResolved(reference)
	}

	return &ports.VerifiedPayment{
		Reference:        result.Data.Reference,
		Amount:           result.Data.Amount,
		Status:           result.Data.Status,
		CustomerEmail:    result.Data.Customer.Email,
		CustomerFullName: result.Data.Metadata.FullName,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.ErrGateway(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperror.ErrGateway(providerName, fmt.Errorf("%s returned status %d", path, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.ErrGateway(providerName, fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}
