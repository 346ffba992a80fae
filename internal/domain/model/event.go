package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event represents a branch event (seminar, conference, workshop) members
// can register for. Attending accrues the event's CPD points.
type Event struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Venue       string          `gorm:"size:255" json:"venue"`
	StartsAt    time.Time       `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time       `gorm:"not null" json:"ends_at"`
	Fee         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"fee"`
	CPDPoints   decimal.Decimal `gorm:"column:cpd_points;type:decimal(6,2);not null;default:0" json:"cpd_points"`
	Capacity    int             `gorm:"not null;default:0" json:"capacity"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// Free reports whether registration requires no payment.
func (e *Event) Free() bool {
	return e.Fee.LessThanOrEqual(decimal.Zero)
}

// RegistrationStatus is the state of an event registration.
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// EventRegistration links a member to an event. Paid registrations stay
// pending until the fee payment is verified.
type EventRegistration struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID          uuid.UUID          `gorm:"type:uuid;not null;index:idx_event_member,unique" json:"event_id"`
	MemberID         uuid.UUID          `gorm:"type:uuid;not null;index:idx_event_member,unique" json:"member_id"`
	PaymentReference string             `gorm:"column:payment_reference;size:60;index" json:"payment_reference,omitempty"`
	Status           RegistrationStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt        time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"default:now()" json:"updated_at"`

	// Relations
	Event  *Event  `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for GORM
func (EventRegistration) TableName() string {
	return "event_registrations"
}
