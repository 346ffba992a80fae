package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// membershipRepository implements the MembershipRepository interface
type membershipRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository instance
func NewMembershipRepository(db *gorm.DB, logger *zap.Logger) domainRepo.MembershipRepository {
	return &membershipRepository{
		db:     db,
		logger: logger,
	}
}

func (r *membershipRepository) Create(ctx context.Context, membership *model.Membership) error {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		r.logger.Error("Failed to create membership",
			zap.String("member_id", membership.MemberID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create membership", err)
	}
	return nil
}

// GetByMemberID retrieves the member's current membership (latest by creation)
func (r *membershipRepository) GetByMemberID(ctx context.Context, memberID uuid.UUID) (*model.Membership, error) {
	var membership model.Membership

	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get membership", err)
	}

	return &membership, nil
}

func (r *membershipRepository) Update(ctx context.Context, membership *model.Membership) error {
	if err := r.db.WithContext(ctx).Save(membership).Error; err != nil {
		r.logger.Error("Failed to update membership",
			zap.String("membership_id", membership.ID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("update membership", err)
	}
	return nil
}

// ActivateWithExpiry marks the member's membership active and overwrites
// the expiry window. JoinedAt is only set the first time.
func (r *membershipRepository) ActivateWithExpiry(ctx context.Context, memberID uuid.UUID, joinedAt, expiresAt time.Time) error {
	membership, err := r.GetByMemberID(ctx, memberID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":     model.MembershipStatusActive,
		"expires_at": expiresAt,
		"updated_at": time.Now(),
	}
	if membership.JoinedAt == nil {
		updates["joined_at"] = joinedAt
	}

	err = r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("id = ?", membership.ID).
		Updates(updates).Error

	if err != nil {
		r.logger.Error("Failed to activate membership",
			zap.String("member_id", memberID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("activate membership", err)
	}

	return nil
}

// CountIssuedInYear counts memberships joined in a calendar year
func (r *membershipRepository) CountIssuedInYear(ctx context.Context, year int) (int64, error) {
	var count int64

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	err := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("member_number IS NOT NULL AND member_number != '' AND created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error

	if err != nil {
		return 0, domainErrors.NewPersistenceError("count memberships", err)
	}

	return count, nil
}
