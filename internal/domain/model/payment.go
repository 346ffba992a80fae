package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment attempt. Pending rows
// are created before any gateway call; only verification moves a row to a
// terminal state. Rows are never deleted.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentType classifies what the money is for.
type PaymentType string

const (
	PaymentTypeMembership PaymentType = "membership"
	PaymentTypeEvent      PaymentType = "event"
	PaymentTypeCPD        PaymentType = "cpd"
)

// Valid reports whether the payment type is one of the known classifications.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeMembership, PaymentTypeEvent, PaymentTypeCPD:
		return true
	}
	return false
}

// Payment represents one attempt to collect money. Reference is the
// caller-generated idempotency key shared with the gateway end-to-end.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Reference   string          `gorm:"size:60;uniqueIndex;not null" json:"reference"`
	MemberID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"member_id"`
	Email       string          `gorm:"size:255;not null" json:"email"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    string          `gorm:"size:3;default:'NGN'" json:"currency"`
	Status      PaymentStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentType PaymentType     `gorm:"column:payment_type;size:20;not null" json:"payment_type"`
	Description string          `gorm:"size:255" json:"description"`
	Method      string          `gorm:"size:50" json:"method,omitempty"`
	GatewayData JSONB           `gorm:"column:gateway_data;type:jsonb" json:"gateway_data,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:now()" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// Terminal reports whether the payment has reached a state from which no
// further transition is expected.
func (p *Payment) Terminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed || p.Status == PaymentStatusRefunded
}
