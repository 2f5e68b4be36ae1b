package apperror

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a generic request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrMissingReference() *AppError {
	return New("VAL_002", "No reference passed in query", http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New("VAL_003", "Invalid amount", http.StatusBadRequest)
}

// ErrUnsupportedNetwork names the full allow-list so callers know the
// accepted set.
func ErrUnsupportedNetwork(allowed []string) *AppError {
	return New("VAL_004",
		fmt.Sprintf("Only %s are accepted for pin deposits", strings.Join(allowed, ", ")),
		http.StatusBadRequest)
}

func ErrInvalidReferralCode() *AppError {
	return New("VAL_005", "Invalid referral code", http.StatusBadRequest)
}

// ---- Gateway / external providers (GW) ----

// ErrGateway wraps a transport or provider-level failure from an external
// payment rail. No wallet mutation has occurred when this is returned.
func ErrGateway(provider string, err error) *AppError {
	return Wrap("GW_001", fmt.Sprintf("%s request failed", provider), http.StatusBadGateway, err)
}

// CodeReferenceNotResolved identifies the not-resolved gateway error for
// callers that branch on it.
const CodeReferenceNotResolved = "GW_002"

// ErrReferenceNotResolved is returned when the provider cannot resolve a
// payment reference, distinct from a transport failure.
func ErrReferenceNotResolved(reference string) *AppError {
	return New(CodeReferenceNotResolved, fmt.Sprintf("payment reference %q could not be resolved", reference), http.StatusNotFound)
}

// ErrUnresolved marks a funding attempt left unresolved. No transaction was
// recorded; the caller may retry verification with the same reference.
func ErrUnresolved(err error) *AppError {
	return Wrap("GW_003", "Funding attempt unresolved, retry verification later", http.StatusBadGateway, err)
}

// ---- Conflicts (CON) ----

func ErrDuplicateWallet() *AppError {
	return New("CON_001", "Wallet already exists for this customer", http.StatusConflict)
}

func ErrEmailExists() *AppError {
	return New("CON_002", "Email address already registered", http.StatusConflict)
}

func ErrConflict(entity string) *AppError {
	return New("CON_003", fmt.Sprintf("%s already exists", entity), http.StatusConflict)
}

// ---- Lookups (WAL) ----

func ErrNotFound(entity string) *AppError {
	return New("WAL_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid email or password", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Code allocation (CODE) ----

// ErrAllocationExhausted is returned when unique code generation failed to
// find an unseen candidate within the attempt budget.
func ErrAllocationExhausted(attempts int) *AppError {
	return New("CODE_001",
		fmt.Sprintf("Could not allocate a unique code after %d attempts", attempts),
		http.StatusServiceUnavailable)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
