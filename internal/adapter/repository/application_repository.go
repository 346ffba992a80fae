package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// applicationRepository implements the ApplicationRepository interface
type applicationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewApplicationRepository creates a new application repository instance
func NewApplicationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ApplicationRepository {
	return &applicationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		r.logger.Error("Failed to create application",
			zap.String("member_id", application.MemberID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create application", err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get application", err)
	}

	return &application, nil
}

// GetOpenByMemberID retrieves the member's pending application, if any
func (r *applicationRepository) GetOpenByMemberID(ctx context.Context, memberID uuid.UUID) (*model.Application, error) {
	var application model.Application

	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, model.ApplicationStatusPending).
		First(&application).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get open application", err)
	}

	return &application, nil
}

func (r *applicationRepository) ListByMemberID(ctx context.Context, memberID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application

	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&applications).Error

	if err != nil {
		return nil, domainErrors.NewPersistenceError("list member applications", err)
	}

	return applications, nil
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status model.ApplicationStatus, limit, offset int) ([]model.Application, error) {
	var applications []model.Application

	query := r.db.WithContext(ctx).
		Preload("Member").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&applications).Error; err != nil {
		return nil, domainErrors.NewPersistenceError("list applications", err)
	}

	return applications, nil
}

func (r *applicationRepository) Update(ctx context.Context, application *model.Application) error {
	if err := r.db.WithContext(ctx).Save(application).Error; err != nil {
		r.logger.Error("Failed to update application",
			zap.String("application_id", application.ID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("update application", err)
	}
	return nil
}
