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

// AirtimeServiceImpl implements ports.AirtimeService: the airtime-to-cash
// settlement workflow.
type AirtimeServiceImpl struct {
	provider  ports.AirtimeProvider
	orderRepo ports.AirtimeOrderRepository
	allocator ports.CodeAllocator
	log       zerolog.Logger
}

// NewAirtimeService creates a new AirtimeServiceImpl.
func NewAirtimeService(
	provider ports.AirtimeProvider,
	orderRepo ports.AirtimeOrderRepository,
	allocator ports.CodeAllocator,
	log zerolog.Logger,
) *AirtimeServiceImpl {
	return &AirtimeServiceImpl{
		provider:  provider,
		orderRepo: orderRepo,
		allocator: allocator,
		log:       log,
	}
}

// AirtimeToCash records a pending settlement order, submits the pin to the
// provider, and stores the provider's answer on the order. The network is
// validated before any identifier is allocated or anything is written.
func (s *AirtimeServiceImpl) AirtimeToCash(ctx context.Context, req ports.AirtimeRequest) (*ports.AirtimeResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if err := s.provider.VerifyNetwork(req.Network); err != nil {
		return nil, err
	}

	orderID, err := s.allocator.OrderID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.AirtimeOrder{
		ID:             uuid.New(),
		OrderID:        orderID,
		CustomerID:     req.CustomerID,
		Network:        req.Network,
		Amount:         req.Amount,
		DepositorPhone: s.provider.FormatPhone(req.DepositorPhone),
		Status:         domain.AirtimeOrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	result, err := s.provider.PinDeposit(ctx, ports.PinDepositParams{
		Pin:            req.Pin,
		Amount:         req.Amount,
		Network:        req.Network,
		OrderID:        orderID,
		DepositorPhone: req.DepositorPhone,
	})
	if err != nil {
		if updErr := s.orderRepo.UpdateStatus(ctx, order.ID, domain.AirtimeOrderStatusFailed, err.Error()); updErr != nil {
			s.log.Error().Err(updErr).Str("order_id", orderID).Msg("mark order failed")
		}
		order.Status = domain.AirtimeOrderStatusFailed
		return nil, err
	}

	order.Status = domain.AirtimeOrderStatusSent
	order.ProviderMessage = result.Message
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, domain.AirtimeOrderStatusSent, result.Message); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update order status: %w", err))
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("network", req.Network).
		Int64("amount", req.Amount).
		Str("provider_status", result.Status).
		Msg("airtime pin submitted")

	return &ports.AirtimeResult{Order: order, Provider: result}, nil
}
