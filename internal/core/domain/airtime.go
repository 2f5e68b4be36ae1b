package domain

import (
	"time"

	"github.com/google/uuid"
)

// AirtimeOrderStatus tracks the lifecycle of an airtime-to-cash settlement
// attempt.
type AirtimeOrderStatus string

const (
	AirtimeOrderStatusPending AirtimeOrderStatus = "pending"
	AirtimeOrderStatusSent    AirtimeOrderStatus = "sent"
	AirtimeOrderStatusFailed  AirtimeOrderStatus = "failed"
)

// AirtimeOrder records a settlement attempt on the airtime-to-cash rail.
// This rail does not mutate the wallet ledger today; the order record is the
// correlation point for reconciling it into the ledger later.
type AirtimeOrder struct {
	ID              uuid.UUID          `json:"id"`
	OrderID         string             `json:"order_id"` // Six-digit allocator-issued identifier
	CustomerID      uuid.UUID          `json:"customer_id"`
	Network         string             `json:"network"`
	Amount          int64              `json:"amount"`
	DepositorPhone  string             `json:"depositor_phone,omitempty"`
	Status          AirtimeOrderStatus `json:"status"`
	ProviderMessage string             `json:"provider_message,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
