package ports

import (
	"context"

	"wallet-funding-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines persistence operations for customers.
// Uniqueness of email and referral_code is enforced by database constraints;
// Create surfaces those violations as conflict errors so application-level
// pre-checks stay an optimization, never the arbiter.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Customer, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)
	IncrementReferralCount(ctx context.Context, referralCode string) error
}

// WalletRepository defines persistence operations for wallets and their
// ledger. Methods accepting pgx.Tx run inside a database transaction so the
// conditional ledger append and the balance increment commit atomically.
type WalletRepository interface {
	// Create inserts a wallet; the unique constraint on customer_id makes
	// wallet creation exactly-once per customer.
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error)
	// GetByReference finds the wallet whose ledger contains the reference.
	GetByReference(ctx context.Context, reference string) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error)
	// InsertTransaction appends a ledger entry if no entry with the same
	// (wallet_id, reference) exists. Returns false without error when the
	// reference was already recorded (idempotent replay).
	InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) (bool, error)
	IncrementBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount int64) error
	UpdateIdentity(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, email, fullName string) error
}

// AirtimeOrderRepository defines persistence for airtime-to-cash settlement
// orders. order_id carries a unique constraint, backing the allocator's
// uniqueness checks.
type AirtimeOrderRepository interface {
	Create(ctx context.Context, order *domain.AirtimeOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.AirtimeOrder, error)
	OrderIDExists(ctx context.Context, orderID string) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AirtimeOrderStatus, providerMessage string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
