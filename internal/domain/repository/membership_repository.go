package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// MembershipRepository persists membership standings.
type MembershipRepository interface {
	Create(ctx context.Context, membership *model.Membership) error
	GetByMemberID(ctx context.Context, memberID uuid.UUID) (*model.Membership, error)
	Update(ctx context.Context, membership *model.Membership) error

	// ActivateWithExpiry sets the member's membership active with the given
	// expiry, overwriting any prior expiry date.
	ActivateWithExpiry(ctx context.Context, memberID uuid.UUID, joinedAt, expiresAt time.Time) error

	// CountIssuedInYear counts member numbers issued in a join year, used
	// to derive the next sequential member number.
	CountIssuedInYear(ctx context.Context, year int) (int64, error)
}
