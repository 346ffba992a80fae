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

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEventRepository creates a new event repository instance
func NewEventRepository(db *gorm.DB, logger *zap.Logger) domainRepo.EventRepository {
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.logger.Error("Failed to create event",
			zap.String("title", event.Title),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create event", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get event", err)
	}

	return &event, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]model.Event, error) {
	var events []model.Event

	err := r.db.WithContext(ctx).
		Where("starts_at >= ?", from).
		Order("starts_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error

	if err != nil {
		return nil, domainErrors.NewPersistenceError("list events", err)
	}

	return events, nil
}

func (r *eventRepository) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.EventRegistration{}).
		Where("event_id = ? AND status != ?", eventID, model.RegistrationStatusCancelled).
		Count(&count).Error

	if err != nil {
		return 0, domainErrors.NewPersistenceError("count registrations", err)
	}

	return count, nil
}

// eventRegistrationRepository implements the EventRegistrationRepository interface
type eventRegistrationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEventRegistrationRepository creates a new event registration repository instance
func NewEventRegistrationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.EventRegistrationRepository {
	return &eventRegistrationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *eventRegistrationRepository) Create(ctx context.Context, registration *model.EventRegistration) error {
	if err := r.db.WithContext(ctx).Create(registration).Error; err != nil {
		r.logger.Error("Failed to create event registration",
			zap.String("event_id", registration.EventID.String()),
			zap.String("member_id", registration.MemberID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("create registration", err)
	}
	return nil
}

func (r *eventRegistrationRepository) GetByEventAndMember(ctx context.Context, eventID, memberID uuid.UUID) (*model.EventRegistration, error) {
	var registration model.EventRegistration

	err := r.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&registration).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get registration", err)
	}

	return &registration, nil
}

func (r *eventRegistrationRepository) GetByPaymentReference(ctx context.Context, reference string) (*model.EventRegistration, error) {
	var registration model.EventRegistration

	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("payment_reference = ?", reference).
		First(&registration).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewPersistenceError("get registration by reference", err)
	}

	return &registration, nil
}

func (r *eventRegistrationRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.EventRegistration, error) {
	var registrations []model.EventRegistration

	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&registrations).Error

	if err != nil {
		return nil, domainErrors.NewPersistenceError("list member registrations", err)
	}

	return registrations, nil
}

func (r *eventRegistrationRepository) Confirm(ctx context.Context, registrationID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&model.EventRegistration{}).
		Where("id = ?", registrationID).
		Updates(map[string]interface{}{
			"status":     model.RegistrationStatusConfirmed,
			"updated_at": time.Now(),
		}).Error

	if err != nil {
		r.logger.Error("Failed to confirm registration",
			zap.String("registration_id", registrationID.String()),
			zap.Error(err))
		return domainErrors.NewPersistenceError("confirm registration", err)
	}

	return nil
}
