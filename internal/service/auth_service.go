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

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	customerRepo ports.CustomerRepository
	walletSvc    ports.WalletService
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	allocator    ports.CodeAllocator
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	customerRepo ports.CustomerRepository,
	walletSvc ports.WalletService,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	allocator ports.CodeAllocator,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		customerRepo: customerRepo,
		walletSvc:    walletSvc,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		allocator:    allocator,
		log:          log,
	}
}

// Register creates a new customer with a referral code and an empty wallet.
// An unknown referrer code fails registration before anything is written.
// Email uniqueness is enforced by the database constraint; the repository
// surfaces the violation as a conflict.
func (s *AuthServiceImpl) Register(ctx context.Context, req ports.RegisterRequest) (*ports.RegisterResult, error) {
	if req.ReferredBy != nil {
		referrer, err := s.customerRepo.GetByReferralCode(ctx, *req.ReferredBy)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("look up referrer: %w", err))
		}
		if referrer == nil {
			return nil, apperror.ErrInvalidReferralCode()
		}
	}

	referralCode, err := s.allocator.ReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: passwordHash,
		ReferralCode: referralCode,
		ReferredBy:   req.ReferredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	wallet, err := s.walletSvc.CreateWallet(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	if req.ReferredBy != nil {
		// The referrer was present above; a failed bump should not undo a
		// completed registration.
		if err := s.customerRepo.IncrementReferralCount(ctx, *req.ReferredBy); err != nil {
			s.log.Warn().Err(err).Str("referral_code", *req.ReferredBy).Msg("increment referral count failed")
		}
	}

	s.log.Info().
		Str("customer_id", customer.ID.String()).
		Str("referral_code", referralCode).
		Msg("customer registered")

	return &ports.RegisterResult{Customer: customer, Wallet: wallet}, nil
}

// Login verifies credentials and issues a JWT. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("get customer: %w", err))
	}
	if customer == nil {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hashSvc.Verify(password, customer.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(customer.ID, customer.Email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}
	return token, expiresAt, nil
}
