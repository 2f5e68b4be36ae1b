package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/pkg/apperror"
)

// maxAllocationAttempts bounds the generate-and-check loop. Exhaustion is a
// service failure, not a retryable condition for the caller.
const maxAllocationAttempts = 10

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// CodeAllocatorImpl implements ports.CodeAllocator. Candidates are drawn from
// crypto/rand and checked against the store; the database unique constraints
// on referral_code and order_id remain the final uniqueness arbiter.
type CodeAllocatorImpl struct {
	customerRepo ports.CustomerRepository
	orderRepo    ports.AirtimeOrderRepository
}

// NewCodeAllocator creates a new CodeAllocatorImpl.
func NewCodeAllocator(customerRepo ports.CustomerRepository, orderRepo ports.AirtimeOrderRepository) *CodeAllocatorImpl {
	return &CodeAllocatorImpl{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// ReferralCode allocates an unseen referral code of the form
// "18/52" + four base36 characters + three digits.
func (a *CodeAllocatorImpl) ReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		code, err := generateReferralCode()
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("generate referral code: %w", err))
		}

		exists, err := a.customerRepo.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("check referral code: %w", err))
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperror.ErrAllocationExhausted(maxAllocationAttempts)
}

// OrderID allocates an unseen six-digit order identifier.
func (a *CodeAllocatorImpl) OrderID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAllocationAttempts; attempt++ {
		id, err := generateOrderID()
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("generate order id: %w", err))
		}

		exists, err := a.orderRepo.OrderIDExists(ctx, id)
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("check order id: %w", err))
		}
		if !exists {
			return id, nil
		}
	}
	return "", apperror.ErrAllocationExhausted(maxAllocationAttempts)
}

func generateReferralCode() (string, error) {
	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			return "", err
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}

	digits, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("18/52%s%03d", suffix, digits.Int64()), nil
}

func generateOrderID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
