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

const airtimeOrderIDConstraint = "airtime_orders_order_id_key"

// AirtimeOrderRepo implements ports.AirtimeOrderRepository.
type AirtimeOrderRepo struct {
	pool Pool
}

// NewAirtimeOrderRepo creates a new AirtimeOrderRepo.
func NewAirtimeOrderRepo(pool Pool) *AirtimeOrderRepo {
	return &AirtimeOrderRepo{pool: pool}
}

// Create inserts a settlement order. The unique constraint on order_id backs
// the allocator's uniqueness guarantee.
func (r *AirtimeOrderRepo) Create(ctx context.Context, o *domain.AirtimeOrder) error {
	query := `INSERT INTO airtime_orders (id, order_id, customer_id, network, amount, depositor_phone, status, provider_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.OrderID, o.CustomerID, o.Network, o.Amount,
		o.DepositorPhone, o.Status, o.ProviderMessage,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, airtimeOrderIDConstraint) {
			return apperror.ErrConflict("Order id")
		}
		return fmt.Errorf("insert airtime order: %w", err)
	}
	return nil
}

// GetByOrderID fetches an order by its allocator-issued identifier.
func (r *AirtimeOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.AirtimeOrder, error) {
	query := `SELECT id, order_id, customer_id, network, amount, depositor_phone, status, provider_message, created_at, updated_at
		FROM airtime_orders WHERE order_id = $1`

	o := &domain.AirtimeOrder{}
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.OrderID, &o.CustomerID, &o.Network, &o.Amount,
		&o.DepositorPhone, &o.Status, &o.ProviderMessage,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get airtime order: %w", err)
	}
	return o, nil
}

// OrderIDExists checks whether an order identifier is already taken.
func (r *AirtimeOrderRepo) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM airtime_orders WHERE order_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check order id exists: %w", err)
	}
	return exists, nil
}

// UpdateStatus records the provider's answer on the order.
func (r *AirtimeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AirtimeOrderStatus, providerMessage string) error {
	query := `UPDATE airtime_orders SET status = $1, provider_message = $2, updated_at = NOW() WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, status, providerMessage, id)
	if err != nil {
		return fmt.Errorf("update airtime order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("airtime order not found: %s", id)
	}
	return nil
}
