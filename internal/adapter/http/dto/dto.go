package dto

import (
	"time"

	"wallet-funding-service/internal/core/domain"
)

// RegisterRequest is the request body for customer registration.
type RegisterRequest struct {
	FirstName   string  `json:"first_name" binding:"required,min=1,max=50"`
	LastName    string  `json:"last_name" binding:"required,min=1,max=50"`
	Email       string  `json:"email" binding:"required,email,max=254"`
	PhoneNumber string  `json:"phone_number" binding:"required,min=7,max=20"`
	Password    string  `json:"password" binding:"required,min=8,max=128"`
	ReferredBy  *string `json:"referred_by,omitempty" binding:"omitempty,referral_code"`
}

// LoginRequest is the request body for customer login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	CustomerID   string `json:"customer_id"`
	ReferralCode string `json:"referral_code"`
	WalletID     string `json:"wallet_id"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// FundRequest is the request body for funding initiation. Amount is in major
// currency units.
type FundRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// FundResponse is the response body for funding initiation.
type FundResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// AirtimeRequest is the request body for airtime-to-cash.
type AirtimeRequest struct {
	Pin            string `json:"pin" binding:"required,min=10,max=20"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Network        string `json:"network" binding:"required"`
	DepositorPhone string `json:"depositor_phone" binding:"omitempty,min=7,max=20"`
}

// AirtimeResponse is the response body for airtime-to-cash.
type AirtimeResponse struct {
	OrderID         string `json:"order_id"`
	Status          string `json:"status"`
	ProviderStatus  string `json:"provider_status"`
	ProviderMessage string `json:"provider_message,omitempty"`
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// WalletResponse is the wallet with its ledger. Balance is in minor units;
// balance_major is the display rendering.
type WalletResponse struct {
	ID           string                `json:"id"`
	Balance      int64                 `json:"balance"`
	BalanceMajor string                `json:"balance_major"`
	Email        string                `json:"email"`
	FullName     string                `json:"full_name"`
	Transactions []TransactionResponse `json:"transactions"`
}

// FromWallet maps a domain wallet to its response shape.
func FromWallet(w *domain.Wallet) WalletResponse {
	txns := make([]TransactionResponse, 0, len(w.Transactions))
	for _, t := range w.Transactions {
		txns = append(txns, TransactionResponse{
			Reference: t.Reference,
			Amount:    t.Amount,
			Status:    string(t.Status),
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		})
	}
	return WalletResponse{
		ID:           w.ID.String(),
		Balance:      w.Balance,
		BalanceMajor: w.BalanceMajor().String(),
		Email:        w.Email,
		FullName:     w.FullName,
		Transactions: txns,
	}
}
