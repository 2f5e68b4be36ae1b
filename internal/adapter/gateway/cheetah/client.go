// Package cheetah implements ports.AirtimeProvider against the CheetahPay
// pin deposit API.
package cheetah

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"wallet-funding-service/config"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/pkg/apperror"

	"github.com/rs/zerolog"
)

const providerName = "cheetahpay"

// Networks accepted for pin deposits.
const (
	Network9Mobile = "9 MOBILE"
	NetworkAirtel  = "AIRTEL"
	NetworkGlo     = "GLO"
	NetworkMTN     = "MTN"
)

var pinDepositNetworks = []string{Network9Mobile, NetworkAirtel, NetworkGlo, NetworkMTN}

// Client calls the CheetahPay API.
type Client struct {
	baseURL    string
	privateKey string
	publicKey  string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a CheetahPay client from config.
func New(cfg config.CheetahConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		privateKey: cfg.PrivateKey,
		publicKey:  cfg.PublicKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With().Str("gateway", providerName).Logger(),
	}
}

type pinDepositRequest struct {
	Amount     int64  `json:"amount"`
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Phone      string `json:"phone"`
	Pin        string `json:"pin"`
	Network    string `json:"network"`
	OrderID    string `json:"order_id"`
}

// PinDeposit submits an airtime pin for settlement. The network must already
// have passed VerifyNetwork; this is re-checked here so the client is safe to
// call directly.
func (c *Client) PinDeposit(ctx context.Context, params ports.PinDepositParams) (*ports.PinDepositResult, error) {
	if err := c.VerifyNetwork(params.Network); err != nil {
		return nil, err
	}

	body := pinDepositRequest{
		Amount:     params.Amount,
		PrivateKey: c.privateKey,
		PublicKey:  c.publicKey,
		Phone:      c.FormatPhone(params.DepositorPhone),
		Pin:        params.Pin,
		Network:    params.Network,
		OrderID:    params.OrderID,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal pin deposit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/pinDeposit", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build pin deposit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.ErrGateway(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.ErrGateway(providerName, fmt.Errorf("pinDeposit returned status %d", resp.StatusCode))
	}

	var result ports.PinDepositResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperror.ErrGateway(providerName, fmt.Errorf("decode pin deposit response: %w", err))
	}

	c.log.Debug().
		Str("order_id", params.OrderID).
		Str("network", params.Network).
		Str("status", result.Status).
		Msg("pin deposit submitted")

	return &result, nil
}

// VerifyNetwork rejects networks outside the pin deposit allow-list. The
// match is exact, including case and spacing.
func (c *Client) VerifyNetwork(network string) error {
	for _, n := range pinDepositNetworks {
		if network == n {
			return nil
		}
	}
	return apperror.ErrUnsupportedNetwork(pinDepositNetworks)
}

// FormatPhone normalizes a depositor phone number: one leading "+234" or one
// leading "0" is stripped, then a single "0" is prepended. Empty input stays
// empty.
func (c *Client) FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	if strings.HasPrefix(phone, "+234") {
		phone = phone[len("+234"):]
	} else if strings.HasPrefix(phone, "0") {
		phone = phone[1:]
	}
	return "0" + phone
}
