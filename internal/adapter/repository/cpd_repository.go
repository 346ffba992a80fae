package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// cpdRepository implements the CPDRepository interface
type cpdRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCPDRepository creates a new CPD repository instance
func NewCPDRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CPDRepository {
	return &cpdRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cpdRepository) Create(ctx context.Context, record *model.CPDRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		r.logger.Error("Failed to create CPD record",
			zap.String("member_id", record.MemberID.String()),
			zap.String("activity", record.Activity),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create cpd record", err)
	}
	return nil
}

// ListByMember retrieves CPD records for a member; year 0 means all years
func (r *cpdRepository) ListByMember(ctx context.Context, memberID uuid.UUID, year int) ([]model.CPDRecord, error) {
	var records []model.CPDRecord

	query := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("awarded_at DESC")
	if year > 0 {
		query = query.Where("year = ?", year)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, domainErrors.NewPersistenceError("list cpd records", err)
	}

	return records, nil
}

func (r *cpdRepository) TotalsByYear(ctx context.Context, memberID uuid.UUID) ([]domainRepo.CPDYearTotal, error) {
	var totals []domainRepo.CPDYearTotal

	err := r.db.WithContext(ctx).
		Model(&model.CPDRecord{}).
		Select("year, SUM(points) AS points").
		Where("member_id = ?", memberID).
		Group("year").
		Order("year DESC").
		Scan(&totals).Error

	if err != nil {
		return nil, domainErrors.NewPersistenceError("sum cpd points", err)
	}

	return totals, nil
}
