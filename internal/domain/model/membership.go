package model

import (
	"time"

	"github.com/google/uuid"
)

// MembershipCategory is the professional grade a member holds. Categories
// are ordered; Rank exposes the ordering for upgrade checks.
type MembershipCategory string

const (
	CategoryStudent   MembershipCategory = "student"
	CategoryGraduate  MembershipCategory = "graduate"
	CategoryAssociate MembershipCategory = "associate"
	CategoryMember    MembershipCategory = "member"
	CategoryFellow    MembershipCategory = "fellow"
)

var categoryRank = map[MembershipCategory]int{
	CategoryStudent:   0,
	CategoryGraduate:  1,
	CategoryAssociate: 2,
	CategoryMember:    3,
	CategoryFellow:    4,
}

// Rank returns the position of the category in the grade ladder, or -1 for
// an unknown category.
func (c MembershipCategory) Rank() int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return -1
}

// Valid reports whether the category is one of the known grades.
func (c MembershipCategory) Valid() bool {
	return c.Rank() >= 0
}

// MembershipStatus is the stored standing of a membership. Expiry is a
// derived property: use EffectiveStatus rather than reading Status when
// the distinction between active and expired matters.
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusInactive MembershipStatus = "inactive"
	MembershipStatusExpired  MembershipStatus = "expired"
)

// Membership represents a member's standing with the association.
type Membership struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MemberID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"member_id"`
	Category     MembershipCategory `gorm:"size:20;not null" json:"category"`
	Status       MembershipStatus   `gorm:"size:20;not null;default:'pending'" json:"status"`
	MemberNumber string             `gorm:"column:member_number;size:30;uniqueIndex" json:"member_number"`
	JoinedAt     *time.Time         `json:"joined_at,omitempty"`
	ExpiresAt    *time.Time         `json:"expires_at,omitempty"`
	CreatedAt    time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"default:now()" json:"updated_at"`

	// Relations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for GORM
func (Membership) TableName() string {
	return "memberships"
}

// EffectiveStatus derives the standing at the given instant. A membership
// stored as active whose expiry has passed reads as expired without any
// stored transition.
func (m *Membership) EffectiveStatus(now time.Time) MembershipStatus {
	if m.Status == MembershipStatusActive && m.ExpiresAt != nil && !m.ExpiresAt.After(now) {
		return MembershipStatusExpired
	}
	return m.Status
}
