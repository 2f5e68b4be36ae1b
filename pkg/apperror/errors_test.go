package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("VAL_002", "No reference passed in query", http.StatusBadRequest),
			expected: "[VAL_002] No reference passed in query",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Validation", Validation("bad input"), "VAL_001", 400},
		{"MissingReference", ErrMissingReference(), "VAL_002", 400},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_003", 400},
		{"UnsupportedNetwork", ErrUnsupportedNetwork([]string{"MTN"}), "VAL_004", 400},
		{"InvalidReferralCode", ErrInvalidReferralCode(), "VAL_005", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestUnsupportedNetwork_NamesAllowedSet(t *testing.T) {
	err := ErrUnsupportedNetwork([]string{"9 MOBILE", "AIRTEL", "GLO", "MTN"})
	assert.Equal(t, "Only 9 MOBILE, AIRTEL, GLO, MTN are accepted for pin deposits", err.Message)
}

func TestGatewayErrors(t *testing.T) {
	inner := fmt.Errorf("dial tcp: timeout")

	gw := ErrGateway("paystack", inner)
	assert.Equal(t, "GW_001", gw.Code)
	assert.Equal(t, http.StatusBadGateway, gw.HTTPStatus)
	assert.True(t, errors.Is(gw, inner))

	nf := ErrReferenceNotResolved("ref_123")
	assert.Equal(t, "GW_002", nf.Code)
	assert.Equal(t, http.StatusNotFound, nf.HTTPStatus)
	assert.Contains(t, nf.Message, "ref_123")

	un := ErrUnresolved(inner)
	assert.Equal(t, "GW_003", un.Code)
	assert.Equal(t, http.StatusBadGateway, un.HTTPStatus)
}

func TestConflictErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"DuplicateWallet", ErrDuplicateWallet(), "CON_001", 409},
		{"EmailExists", ErrEmailExists(), "CON_002", 409},
		{"Conflict", ErrConflict("Referral code"), "CON_003", 409},
		{"NotFound", ErrNotFound("Wallet"), "WAL_001", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestAuthAndAllocationErrors(t *testing.T) {
	assert.Equal(t, "AUTH_001", ErrInvalidCredentials().Code)
	assert.Equal(t, 401, ErrInvalidCredentials().HTTPStatus)
	assert.Equal(t, "AUTH_002", ErrInvalidToken().Code)

	ex := ErrAllocationExhausted(10)
	assert.Equal(t, "CODE_001", ex.Code)
	assert.Equal(t, http.StatusServiceUnavailable, ex.HTTPStatus)
	assert.Contains(t, ex.Message, "10 attempts")

	assert.Equal(t, "RATE_001", ErrRateLimitExceeded().Code)
	assert.Equal(t, 429, ErrRateLimitExceeded().HTTPStatus)
}

func TestInternalError(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := InternalError(inner)
	assert.Equal(t, "SYS_001", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.True(t, errors.Is(err, inner))
}
