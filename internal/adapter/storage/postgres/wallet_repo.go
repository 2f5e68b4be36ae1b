package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-funding-service/internal/core/domain"
	"wallet-funding-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletCustomerConstraint = "wallets_customer_id_key"

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet. The unique constraint on customer_id makes
// creation exactly-once per customer regardless of application races.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, customer_id, balance, email, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.CustomerID, w.Balance, w.Email, w.FullName,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, walletCustomerConstraint) {
			return apperror.ErrDuplicateWallet()
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByCustomerID fetches the wallet owned by a customer.
func (r *WalletRepo) GetByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	query := walletSelect + ` WHERE customer_id = $1`
	return r.scanWallet(r.pool.QueryRow(ctx, query, customerID))
}

// GetByReference finds the wallet whose ledger contains the given reference.
// Used for receipt lookup; purely a read.
func (r *WalletRepo) GetByReference(ctx context.Context, reference string) (*domain.Wallet, error) {
	query := `SELECT w.id, w.customer_id, w.balance, w.email, w.full_name, w.created_at, w.updated_at
		FROM wallets w
		JOIN wallet_transactions t ON t.wallet_id = w.id
		WHERE t.reference = $1`
	return r.scanWallet(r.pool.QueryRow(ctx, query, reference))
}

// ListTransactions returns the wallet's ledger in insertion order.
func (r *WalletRepo) ListTransactions(ctx context.Context, walletID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT id, wallet_id, reference, amount, status, created_at
		FROM wallet_transactions WHERE wallet_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		if err := rows.Scan(&t.ID, &t.WalletID, &t.Reference, &t.Amount, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

// InsertTransaction appends a ledger entry unless the reference was already
// recorded for the wallet. The conditional append runs as a single statement
// keyed on the (wallet_id, reference) unique constraint, so two concurrent
// verifications of the same reference cannot both insert. Returns false when
// the entry already existed.
func (r *WalletRepo) InsertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) (bool, error) {
	query := `INSERT INTO wallet_transactions (id, wallet_id, reference, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (wallet_id, reference) DO NOTHING`

	tag, err := tx.Exec(ctx, query, t.ID, t.WalletID, t.Reference, t.Amount, t.Status, t.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert wallet transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementBalance adds amount (minor units) to the wallet balance. Must run
// in the same transaction as the ledger append that justifies it.
func (r *WalletRepo) IncrementBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount int64) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, amount, walletID)
	if err != nil {
		return fmt.Errorf("increment wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

// UpdateIdentity refreshes the denormalized provider-reported identity.
func (r *WalletRepo) UpdateIdentity(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, email, fullName string) error {
	query := `UPDATE wallets SET email = $1, full_name = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, email, fullName, walletID)
	if err != nil {
		return fmt.Errorf("update wallet identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", walletID)
	}
	return nil
}

const walletSelect = `SELECT id, customer_id, balance, email, full_name, created_at, updated_at
	FROM wallets`

func (r *WalletRepo) scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.CustomerID, &w.Balance, &w.Email, &w.FullName,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
