package ports

import (
	"context"
	"time"

	"wallet-funding-service/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(customerID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	CustomerID uuid.UUID
	Email      string
}

// ReceiptCache is the Redis fast path for verified-payment replays. It is
// never authoritative; the database unique constraint on
// (wallet_id, reference) remains the arbiter.
type ReceiptCache interface {
	Get(ctx context.Context, reference string) ([]byte, error) // nil when absent
	Set(ctx context.Context, reference string, value []byte, ttl time.Duration) error
}

// CodeAllocator produces codes guaranteed unique against a live store check,
// within a bounded attempt budget.
type CodeAllocator interface {
	// ReferralCode allocates an unseen referral code.
	ReferralCode(ctx context.Context) (string, error)
	// OrderID allocates an unseen six-digit airtime order identifier.
	OrderID(ctx context.Context) (string, error)
}

// --- Service Ports (Business Logic) ---

// WalletService is the wallet store: the sole authority allowed to mutate
// balances.
type WalletService interface {
	CreateWallet(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
	WalletByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
	WalletByReference(ctx context.Context, reference string) (*domain.Wallet, error)
	// ApplyVerifiedPayment applies a verified provider outcome exactly once
	// per reference. A replay returns the wallet unchanged.
	ApplyVerifiedPayment(ctx context.Context, params ApplyPaymentParams) (*domain.Wallet, error)
}

// ApplyPaymentParams holds a verified provider outcome destined for the
// ledger.
type ApplyPaymentParams struct {
	CustomerID uuid.UUID
	Reference  string
	Amount     int64 // Minor units, as reported by the provider
	Status     domain.TransactionStatus
	Email      string
	FullName   string
}

// FundingService is the payment reconciliation workflow for the primary
// rail.
type FundingService interface {
	StartFunding(ctx context.Context, req FundingRequest) (*PaymentIntent, error)
	CompleteFunding(ctx context.Context, customerID uuid.UUID, reference string) (*domain.Wallet, error)
	FetchReceipt(ctx context.Context, reference string) (*domain.Wallet, error)
}

// FundingRequest holds validated input for funding initiation. Identity
// fields come from the authenticated customer, not the request body.
type FundingRequest struct {
	CustomerID uuid.UUID
	Email      string
	FullName   string
	Amount     int64 // Major units
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

// RegisterRequest holds validated input for customer registration.
type RegisterRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
	ReferredBy  *string // Referrer's referral code, validated before creation
}

// RegisterResult holds the created customer and their wallet.
type RegisterResult struct {
	Customer *domain.Customer
	Wallet   *domain.Wallet
}

// AirtimeService defines the airtime-to-cash settlement workflow.
type AirtimeService interface {
	AirtimeToCash(ctx context.Context, req AirtimeRequest) (*AirtimeResult, error)
}

// AirtimeRequest holds validated input for an airtime-to-cash call.
type AirtimeRequest struct {
	CustomerID     uuid.UUID
	Pin            string
	Amount         int64
	Network        string
	DepositorPhone string
}

// AirtimeResult pairs the recorded order with the provider's response.
type AirtimeResult struct {
	Order    *domain.AirtimeOrder
	Provider *PinDepositResult
}
