package model

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole determines which parts of the portal a member can reach.
// Role checks are always resolved against this table, never against
// client-supplied claims.
type MemberRole string

const (
	MemberRoleMember MemberRole = "member"
	MemberRoleAdmin  MemberRole = "admin"
)

// Member represents one person known to the branch. The identity provider
// owns authentication; SubjectID links its user record to ours.
type Member struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubjectID string     `gorm:"column:subject_id;size:100;uniqueIndex;not null" json:"subject_id"`
	Email     string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName string     `gorm:"size:100;not null" json:"first_name"`
	LastName  string     `gorm:"size:100;not null" json:"last_name"`
	Phone     string     `gorm:"size:30" json:"phone,omitempty"`
	Role      MemberRole `gorm:"size:20;not null;default:'member'" json:"role"`
	CreatedAt time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// IsAdmin reports whether the member holds the admin role.
func (m *Member) IsAdmin() bool {
	return m.Role == MemberRoleAdmin
}
