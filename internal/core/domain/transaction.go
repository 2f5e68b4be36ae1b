package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the provider-reported outcome of a funding attempt.
// Unexpected provider values are recorded literally; only the exact value
// "success" ever credits a wallet.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction is an immutable ledger entry recorded the first time a
// verification response is observed for a reference. A second verification
// carrying the same reference must not create a second entry.
type Transaction struct {
	ID        uuid.UUID         `json:"id"`
	WalletID  uuid.UUID         `json:"wallet_id"`
	Reference string            `json:"reference"` // Provider correlation id; idempotency key
	Amount    int64             `json:"amount"`    // Raw provider amount, minor units
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// Credits reports whether this entry increments the wallet balance.
func (t *Transaction) Credits() bool {
	return t.Status == TransactionStatusSuccess
}
