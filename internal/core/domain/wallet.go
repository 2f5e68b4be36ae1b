package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet owns a customer's balance and its transaction ledger. There is
// exactly one wallet per customer; the wallet holds a back-reference to the
// customer, never the other way around.
//
// Balance is kept in minor currency units (kobo). The invariant maintained
// by the wallet store is:
//
//	Balance == Σ Amount(t) for every ledger entry t with Status == success
type Wallet struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Balance    int64     `json:"balance"` // Minor units
	// Denormalized identity as reported by the payment provider at
	// verification time; may lag the customer's own profile.
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Transactions is the append-only ledger in insertion order. Populated
	// on reads that request it; never trimmed or reordered.
	Transactions []Transaction `json:"transactions,omitempty"`
}

// minorUnitsPerMajor is the conversion factor between the wallet's base
// display currency and its stored minor units (1 NGN = 100 kobo).
const minorUnitsPerMajor = 100

// BalanceMajor returns the balance in major currency units as an exact
// decimal (e.g. 500000 -> 5000.00).
func (w *Wallet) BalanceMajor() decimal.Decimal {
	return decimal.New(w.Balance, 0).Div(decimal.New(minorUnitsPerMajor, 0))
}

// MajorToMinor converts a major-unit amount to minor units for transmission
// to the payment provider. This is the single place the ×100 conversion
// lives.
func MajorToMinor(amount int64) int64 {
	return amount * minorUnitsPerMajor
}
