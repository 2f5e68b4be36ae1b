package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wallet-funding-service/internal/core/domain"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const receiptTTL = 24 * time.Hour

// cachedReceipt is the Redis representation of a settled verification.
type cachedReceipt struct {
	Reference string `json:"reference"`
	WalletID  string `json:"wallet_id"`
}

// FundingServiceImpl implements ports.FundingService: the reconciliation
// workflow between the payment gateway and the wallet ledger.
type FundingServiceImpl struct {
	gateway      ports.PaymentGateway
	walletSvc    ports.WalletService
	receiptCache ports.ReceiptCache
	log          zerolog.Logger
}

// NewFundingService creates a new FundingServiceImpl.
func NewFundingService(
	gateway ports.PaymentGateway,
	walletSvc ports.WalletService,
	receiptCache ports.ReceiptCache,
	log zerolog.Logger,
) *FundingServiceImpl {
	return &FundingServiceImpl{
		gateway:      gateway,
		walletSvc:    walletSvc,
		receiptCache: receiptCache,
		log:          log,
	}
}

// StartFunding initiates a hosted checkout session. The identity fields come
// from the authenticated customer; the provider's answer is returned
// unmodified so the client can follow the authorization URL.
func (s *FundingServiceImpl) StartFunding(ctx context.Context, req ports.FundingRequest) (*ports.PaymentIntent, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	intent, err := s.gateway.Initialize(ctx, ports.InitializePaymentParams{
		Amount:   req.Amount,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("customer_id", req.CustomerID.String()).
		Str("reference", intent.Reference).
		Int64("amount", req.Amount).
		Msg("funding initiated")

	return intent, nil
}

// CompleteFunding verifies a reference with the gateway and applies the
// outcome to the customer's wallet. Safe to call any number of times with the
// same reference: the first call settles, every later call returns the wallet
// unchanged.
func (s *FundingServiceImpl) CompleteFunding(ctx context.Context, customerID uuid.UUID, reference string) (*domain.Wallet, error) {
	if reference == "" {
		return nil, apperror.ErrMissingReference()
	}

	// Fast path: a cached receipt means this reference already settled.
	// Skip the gateway round trip; the ledger still decides whether any
	// credit applies.
	cached, err := s.receiptCache.Get(ctx, reference)
	if err != nil {
		s.log.Warn().Err(err).Str("reference", reference).Msg("receipt cache check failed, falling through to gateway")
	}
	if cached != nil {
		return s.walletSvc.WalletByCustomer(ctx, customerID)
	}

	payment, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeReferenceNotResolved {
			return nil, err
		}
		return nil, apperror.ErrUnresolved(err)
	}

	wallet, err := s.walletSvc.ApplyVerifiedPayment(ctx, ports.ApplyPaymentParams{
		CustomerID: customerID,
		Reference:  payment.Reference,
		Amount:     payment.Amount,
		Status:     domain.TransactionStatus(payment.Status),
		Email:      payment.CustomerEmail,
		FullName:   payment.CustomerFullName,
	})
	if err != nil {
		return nil, err
	}

	s.cacheReceipt(ctx, payment.Reference, wallet.ID)

	s.log.Info().
		Str("reference", payment.Reference).
		Str("status", payment.Status).
		Int64("amount", payment.Amount).
		Msg("funding completed")

	return wallet, nil
}

// FetchReceipt returns the wallet whose ledger contains the reference.
// Read-only; no verification and no mutation.
func (s *FundingServiceImpl) FetchReceipt(ctx context.Context, reference string) (*domain.Wallet, error) {
	if reference == "" {
		return nil, apperror.ErrMissingReference()
	}
	return s.walletSvc.WalletByReference(ctx, reference)
}

// cacheReceipt is best-effort; a cache failure never fails the funding.
func (s *FundingServiceImpl) cacheReceipt(ctx context.Context, reference string, walletID uuid.UUID) {
	payload, err := json.Marshal(cachedReceipt{Reference: reference, WalletID: walletID.String()})
	if err != nil {
		s.log.Warn().Err(err).Str("reference", reference).Msg("marshal receipt failed")
		return
	}
	if err := s.receiptCache.Set(ctx, reference, payload, receiptTTL); err != nil {
		s.log.Warn().Err(err).Str("reference", reference).Msg("cache receipt failed")
	}
}
