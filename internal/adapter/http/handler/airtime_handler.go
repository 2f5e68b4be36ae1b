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

// AirtimeHandler handles airtime-to-cash endpoints.
type AirtimeHandler struct {
	airtimeSvc ports.AirtimeService
}

// NewAirtimeHandler creates a new AirtimeHandler.
func NewAirtimeHandler(airtimeSvc ports.AirtimeService) *AirtimeHandler {
	return &AirtimeHandler{airtimeSvc: airtimeSvc}
}

// AirtimeToCash handles POST /api/v1/airtime/to-cash.
func (h *AirtimeHandler) AirtimeToCash(c *gin.Context) {
	customerID, ok := c.Get(middleware.CtxCustomerID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.AirtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.airtimeSvc.AirtimeToCash(c.Request.Context(), ports.AirtimeRequest{
		CustomerID:     customerID.(uuid.UUID),
		Pin:            req.Pin,
		Amount:         req.Amount,
		Network:        req.Network,
		DepositorPhone: req.DepositorPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.AirtimeResponse{
		OrderID:         result.Order.OrderID,
		Status:          string(result.Order.Status),
		ProviderStatus:  result.Provider.Status,
		ProviderMessage: result.Provider.Message,
	})
}
