package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// memberRepository implements the MemberRepository interface
type memberRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMemberRepository creates a new member repository instance
func NewMemberRepository(db *gorm.DB, logger *zap.Logger) domainRepo.MemberRepository {
	return &memberRepository{
		db:     db,
		logger: logger,
	}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))

	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		r.logger.Error("Failed to create member",
			zap.String("email", member.Email),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create member", err)
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get member", err)
	}

	return &member, nil
}

func (r *memberRepository) GetBySubjectID(ctx context.Context, subjectID string) (*model.Member, error) {
	var member model.Member

	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get member by subject", err)
	}

	return &member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member

	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get member by email", err)
	}

	return &member, nil
}

func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	if err := r.db.WithContext(ctx).Save(member).Error; err != nil {
		r.logger.Error("Failed to update member",
			zap.String("member_id", member.ID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("update member", err)
	}
	return nil
}
