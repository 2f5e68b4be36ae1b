package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a registered customer account.
type Customer struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	PasswordHash  string    `json:"-"`
	ReferralCode  string    `json:"referral_code"` // Immutable once assigned
	ReferredBy    *string   `json:"referred_by,omitempty"`
	ReferralCount int64     `json:"referral_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName returns the display name sent to payment providers.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
