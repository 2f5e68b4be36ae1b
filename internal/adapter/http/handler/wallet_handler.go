package handler

import (
	"wallet-funding-service/internal/adapter/http/dto"
	"wallet-funding-service/internal/adapter/http/middleware"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/pkg/apperror"
	"wallet-funding-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet and funding endpoints.
type WalletHandler struct {
	fundingSvc   ports.FundingService
	walletSvc    ports.WalletService
	customerRepo ports.CustomerRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(fundingSvc ports.FundingService, walletSvc ports.WalletService, customerRepo ports.CustomerRepository) *WalletHandler {
	return &WalletHandler{
		fundingSvc:   fundingSvc,
		walletSvc:    walletSvc,
		customerRepo: customerRepo,
	}
}

// Fund handles POST /api/v1/wallet/fund. Identity fields are taken from the
// authenticated customer record, never from the request body.
func (h *WalletHandler) Fund(c *gin.Context) {
	customerID, ok := c.Get(middleware.CtxCustomerID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	customer, err := h.customerRepo.GetByID(c.Request.Context(), customerID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}
	if customer == nil {
		response.Error(c, apperror.ErrNotFound("customer"))
		return
	}

	intent, err := h.fundingSvc.StartFunding(c.Request.Context(), ports.FundingRequest{
		CustomerID: customer.ID,
		Email:      customer.Email,
		FullName:   customer.FullName(),
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FundResponse{
		AuthorizationURL: intent.AuthorizationURL,
		AccessCode:       intent.AccessCode,
		Reference:        intent.Reference,
	})
}

// VerifyFunding handles GET /api/v1/wallet/fund/verify/:reference.
func (h *WalletHandler) VerifyFunding(c *gin.Context) {
	customerID, ok := c.Get(middleware.CtxCustomerID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.fundingSvc.CompleteFunding(c.Request.Context(), customerID.(uuid.UUID), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}

// GetWallet handles GET /api/v1/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	customerID, ok := c.Get(middleware.CtxCustomerID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallet, err := h.walletSvc.WalletByCustomer(c.Request.Context(), customerID.(uuid.UUID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}

// GetReceipt handles GET /api/v1/wallet/receipt/:reference.
func (h *WalletHandler) GetReceipt(c *gin.Context) {
	wallet, err := h.fundingSvc.FetchReceipt(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}
