package ports

import "context"

// PaymentGateway is the protocol client for the primary card/bank payment
// rail. It is stateless and interprets nothing beyond transport success:
// provider-reported payment status is passed through for the reconciliation
// workflow to judge. Retry policy belongs to the caller.
type PaymentGateway interface {
	Initialize(ctx context.Context, params InitializePaymentParams) (*PaymentIntent, error)
	Verify(ctx context.Context, reference string) (*VerifiedPayment, error)
}

// InitializePaymentParams carries the initiation payload. Amount is in major
// currency units; the gateway converts to minor units on the wire.
type InitializePaymentParams struct {
	Amount   int64
	Email    string
	FullName string
}

// PaymentIntent is the provider's answer to an initiation call, returned to
// the client unmodified.
type PaymentIntent struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifiedPayment is the provider's answer to a verification call. Amount is
// the raw provider amount in minor units. Status is the literal provider
// value, uninterpreted.
type VerifiedPayment struct {
	Reference        string
	Amount           int64
	Status           string
	CustomerEmail    string
	CustomerFullName string
}

// AirtimeProvider is the protocol client for the airtime-to-cash settlement
// rail.
type AirtimeProvider interface {
	// PinDeposit submits an airtime pin for settlement. VerifyNetwork must
	// pass before any network call is made.
	PinDeposit(ctx context.Context, params PinDepositParams) (*PinDepositResult, error)
	// VerifyNetwork validates the mobile network operator name against the
	// provider's fixed allow-list.
	VerifyNetwork(network string) error
	// FormatPhone normalizes a phone number to the provider's canonical
	// 0-prefixed local format. Pure and total; empty input yields empty
	// output.
	FormatPhone(phone string) string
}

// PinDepositParams carries the settlement payload.
type PinDepositParams struct {
	Pin            string
	Amount         int64
	Network        string
	OrderID        string
	DepositorPhone string
}

// PinDepositResult is the provider-defined response body.
type PinDepositResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
