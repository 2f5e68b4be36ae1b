package service

import (
	"context"
	"fmt"
	"time"

	"wallet-funding-service/internal/core/domain"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. It is the only component
// that mutates balances; everything upstream deals in provider outcomes.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(walletRepo ports.WalletRepository, transactor ports.DBTransactor, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// CreateWallet creates an empty wallet for a customer.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:         uuid.New(),
		CustomerID: customerID,
		Balance:    0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// WalletByCustomer returns the customer's wallet with its full ledger.
func (s *WalletServiceImpl) WalletByCustomer(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return s.attachTransactions(ctx, wallet)
}

// WalletByReference returns the wallet whose ledger contains the reference,
// with its full ledger attached. Read-only receipt lookup.
func (s *WalletServiceImpl) WalletByReference(ctx context.Context, reference string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet by reference: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return s.attachTransactions(ctx, wallet)
}

// ApplyVerifiedPayment records a verified provider outcome exactly once per
// reference. The ledger append and the conditional balance credit commit in
// one database transaction:
//
//  1. Append the transaction with ON CONFLICT DO NOTHING. If the reference
//     was already recorded for this wallet, nothing is inserted and the
//     balance stays untouched.
//  2. Only a freshly inserted entry with literal provider status "success"
//     credits the balance. Every other status is recorded without credit.
//  3. The provider-reported identity is refreshed regardless of status.
//
// A replay is not an error; the wallet is returned unchanged.
func (s *WalletServiceImpl) ApplyVerifiedPayment(ctx context.Context, params ports.ApplyPaymentParams) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByCustomerID(ctx, params.CustomerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn := &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  wallet.ID,
		Reference: params.Reference,
		Amount:    params.Amount,
		Status:    params.Status,
		CreatedAt: time.Now().UTC(),
	}

	inserted, err := s.walletRepo.InsertTransaction(ctx, dbTx, txn)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transaction: %w", err))
	}

	if inserted && txn.Credits() {
		if err := s.walletRepo.IncrementBalance(ctx, dbTx, wallet.ID, params.Amount); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("credit balance: %w", err))
		}
		wallet.Balance += params.Amount
	}

	if err := s.walletRepo.UpdateIdentity(ctx, dbTx, wallet.ID, params.Email, params.FullName); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update identity: %w", err))
	}
	wallet.Email = params.Email
	wallet.FullName = params.FullName

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if !inserted {
		s.log.Debug().
			Str("reference", params.Reference).
			Str("wallet_id", wallet.ID.String()).
			Msg("reference already recorded, replay ignored")
	}

	return s.attachTransactions(ctx, wallet)
}

func (s *WalletServiceImpl) attachTransactions(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, error) {
	txns, err := s.walletRepo.ListTransactions(ctx, wallet.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	wallet.Transactions = txns
	return wallet, nil
}
