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

// Constraint names referenced when mapping unique violations.
const (
	customerEmailConstraint    = "customers_email_key"
	customerReferralConstraint = "customers_referral_code_key"
)

// CustomerRepo implements ports.CustomerRepository.
type CustomerRepo struct {
	pool Pool
}

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(pool Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create inserts a new customer. Unique violations on email or referral_code
// surface as conflict errors; the database constraint, not any pre-check, is
// the final arbiter under concurrent registration.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (id, first_name, last_name, email, phone_number, password_hash, referral_code, referred_by, referral_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber,
		c.PasswordHash, c.ReferralCode, c.ReferredBy, c.ReferralCount,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, customerEmailConstraint) {
			return apperror.ErrEmailExists()
		}
		if isUniqueViolation(err, customerReferralConstraint) {
			return apperror.ErrConflict("Referral code")
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer by its UUID.
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := customerSelect + ` WHERE id = $1`
	return r.scanCustomer(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail fetches a customer by email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := customerSelect + ` WHERE email = $1`
	return r.scanCustomer(r.pool.QueryRow(ctx, query, email))
}

// GetByReferralCode fetches a customer by their referral code.
func (r *CustomerRepo) GetByReferralCode(ctx context.Context, code string) (*domain.Customer, error) {
	query := customerSelect + ` WHERE referral_code = $1`
	return r.scanCustomer(r.pool.QueryRow(ctx, query, code))
}

// ReferralCodeExists checks whether a referral code is already assigned.
func (r *CustomerRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customers WHERE referral_code = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("check referral code exists: %w", err)
	}
	return exists, nil
}

// IncrementReferralCount bumps the referral counter of the customer owning
// the given referral code.
func (r *CustomerRepo) IncrementReferralCount(ctx context.Context, referralCode string) error {
	query := `UPDATE customers SET referral_count = referral_count + 1, updated_at = NOW() WHERE referral_code = $1`

	tag, err := r.pool.Exec(ctx, query, referralCode)
	if err != nil {
		return fmt.Errorf("increment referral count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("referral code not found: %s", referralCode)
	}
	return nil
}

const customerSelect = `SELECT id, first_name, last_name, email, phone_number, password_hash, referral_code, referred_by, referral_count, created_at, updated_at
	FROM customers`

func (r *CustomerRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber,
		&c.PasswordHash, &c.ReferralCode, &c.ReferredBy, &c.ReferralCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}
