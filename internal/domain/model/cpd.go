package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CPDSource identifies how a CPD record was earned.
type CPDSource string

const (
	CPDSourceEvent  CPDSource = "event"
	CPDSourceManual CPDSource = "manual"
)

// CPDRecord is one continuing-professional-development accrual. Points
// are summed per calendar year for the member's CPD standing.
type CPDRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MemberID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"member_id"`
	Activity  string          `gorm:"size:255;not null" json:"activity"`
	Points    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"points"`
	Year      int             `gorm:"not null;index" json:"year"`
	Source    CPDSource       `gorm:"size:20;not null" json:"source"`
	AwardedAt time.Time       `gorm:"not null" json:"awarded_at"`
	CreatedAt time.Time       `gorm:"default:now()" json:"created_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for GORM
func (CPDRecord) TableName() string {
	return "cpd_records"
}
