package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a membership application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application represents a one-time membership intake submission. It is
// created by the applicant and mutated only by an administrator review.
type Application struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MemberID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"member_id"`
	Category    MembershipCategory `gorm:"size:20;not null" json:"category"`
	Statement   string             `gorm:"type:text" json:"statement"`
	DocumentURL string             `gorm:"column:document_url;size:500" json:"document_url,omitempty"`
	Status      ApplicationStatus  `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy  *uuid.UUID         `gorm:"column:reviewed_by;type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty"`
	ReviewNote  string             `gorm:"column:review_note;size:500" json:"review_note,omitempty"`
	CreatedAt   time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"default:now()" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for GORM
func (Application) TableName() string {
	return "applications"
}
