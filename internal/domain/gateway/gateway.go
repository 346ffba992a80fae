package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Client is the provider-agnostic contract for the hosted payment gateway.
// Implementations are stateless: they translate internal payment intents to
// the gateway's wire format and normalize responses, making no local writes.
type Client interface {
	// Initialize creates a hosted checkout session for an amount/reference
	// and returns the URL the payer must be redirected to.
	Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResult, error)

	// Verify fetches the authoritative final status for a reference.
	Verify(ctx context.Context, reference string) (*VerifyResult, error)

	// Name returns the gateway identifier recorded as the payment method.
	Name() string
}

// InitializeRequest carries a payment intent to the gateway. Amount is in
// major units (naira); implementations convert to minor units on the wire.
type InitializeRequest struct {
	Email       string                 `json:"email"`
	Amount      decimal.Decimal        `json:"amount"`
	Reference   string                 `json:"reference"`
	CallbackURL string                 `json:"callback_url"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// InitializeResult is the normalized response from checkout creation.
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// TransactionStatus is the gateway's reported state for a reference.
type TransactionStatus string

const (
	StatusSuccess   TransactionStatus = "success"
	StatusFailed    TransactionStatus = "failed"
	StatusAbandoned TransactionStatus = "abandoned"
	StatusPending   TransactionStatus = "pending"
)

// Definitive reports whether the status is an explicit terminal signal from
// the gateway. Ambiguous states (pending, ongoing) are not definitive and
// must never terminalize a local payment row.
func (s TransactionStatus) Definitive() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusAbandoned
}

// VerifyResult is the normalized response from verification. Amount is
// converted back to major units.
type VerifyResult struct {
	Status   TransactionStatus      `json:"status"`
	Amount   decimal.Decimal        `json:"amount"`
	Channel  string                 `json:"channel"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	PaidAt   *time.Time             `json:"paid_at,omitempty"`
}

var minorUnitFactor = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount to the gateway's minor-unit
// convention (naira to kobo). Exact for any amount with at most two
// decimal places.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitFactor).IntPart()
}

// FromMinorUnits converts a minor-unit amount back to major units.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorUnitFactor)
}
