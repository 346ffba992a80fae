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

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new payment row. The unique index on the reference
// surfaces generator collisions as a persistence error.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.logger.Error("Failed to create payment",
			zap.String("reference", payment.Reference),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create payment", err)
	}
	return nil
}

// GetByReference retrieves a payment by its unique reference
func (r *paymentRepository) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		r.logger.Error("Failed to get payment by reference",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, domainErrors.NewPersistenceError("get payment", err)
	}

	return &payment, nil
}

// ListByMember retrieves a member's payments, newest first
func (r *paymentRepository) ListByMember(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]model.Payment, error) {
	var payments []model.Payment

	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error

	if err != nil {
		return nil, domainErrors.NewPersistenceError("list member payments", err)
	}

	return payments, nil
}

// List retrieves payments across all members, optionally filtered by status
func (r *paymentRepository) List(ctx context.Context, status model.PaymentStatus, limit, offset int) ([]model.Payment, error) {
	var payments []model.Payment

	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&payments).Error; err != nil {
		return nil, domainErrors.NewPersistenceError("list payments", err)
	}

	return payments, nil
}

// ListStalePending returns pending payments created before the cutoff
func (r *paymentRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	var payments []model.Payment

	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.PaymentStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&payments).Error

	if err != nil {
		return nil, domainErrors.NewPersistenceError("list stale pending payments", err)
	}

	return payments, nil
}

// MarkCompleted performs the pending-to-completed transition as a single
// conditional update so concurrent verifications for the same reference
// cannot both apply side effects.
func (r *paymentRepository) MarkCompleted(ctx context.Context, reference, method string, paidAt time.Time, gatewayData model.JSONB) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("reference = ? AND status = ?", reference, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       model.PaymentStatusCompleted,
			"method":       method,
			"paid_at":      paidAt,
			"gateway_data": gatewayData,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark payment completed",
			zap.String("reference", reference),
			zap.Error(result.Error))
		return false, domainErrors.NewPersistenceError("complete payment", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// MarkFailed performs the pending-to-failed transition as a single
// conditional update
func (r *paymentRepository) MarkFailed(ctx context.Context, reference, reason string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("reference = ? AND status = ?", reference, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       model.PaymentStatusFailed,
			"gateway_data": model.JSONB{"failure_reason": reason},
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark payment failed",
			zap.String("reference", reference),
			zap.Error(result.Error))
		return false, domainErrors.NewPersistenceError("fail payment", result.Error)
	}

	return result.RowsAffected > 0, nil
}
