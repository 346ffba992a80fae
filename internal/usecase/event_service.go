package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
	"github.com/CIPMABUJA/hr-hub-backend/internal/notification"
)

// CreateEventRequest describes a new branch event.
type CreateEventRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description"`
	Venue       string          `json:"venue" validate:"max=255"`
	StartsAt    time.Time       `json:"starts_at" validate:"required"`
	EndsAt      time.Time       `json:"ends_at" validate:"required"`
	Fee         decimal.Decimal `json:"fee"`
	CPDPoints   decimal.Decimal `json:"cpd_points"`
	Capacity    int             `json:"capacity" validate:"min=0"`
}

// RegisterResult reports the outcome of an event registration. For paid
// events Payment carries the checkout redirect; for free events the
// registration is confirmed immediately.
type RegisterResult struct {
	Registration *model.EventRegistration `json:"registration"`
	Payment      *InitializePaymentResult `json:"payment,omitempty"`
}

// EventService handles branch events and member registrations. Paid
// registrations go through the payment flow and stay pending until the
// fee payment verifies.
type EventService struct {
	events        domainRepo.EventRepository
	registrations domainRepo.EventRegistrationRepository
	members       domainRepo.MemberRepository
	tx            domainRepo.TransactionManager
	payments      *PaymentService
	dispatcher    *notification.Dispatcher
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewEventService creates a new event service instance
func NewEventService(
	events domainRepo.EventRepository,
	registrations domainRepo.EventRegistrationRepository,
	members domainRepo.MemberRepository,
	tx domainRepo.TransactionManager,
	payments *PaymentService,
	dispatcher *notification.Dispatcher,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		events:        events,
		registrations: registrations,
		members:       members,
		tx:            tx,
		payments:      payments,
		dispatcher:    dispatcher,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Create records a new event. The caller's admin role is re-checked
// against the members table.
func (s *EventService) Create(ctx context.Context, creatorID uuid.UUID, req *CreateEventRequest) (*model.Event, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, domainErrors.NewValidationError("ends_at", "must be after starts_at")
	}
	if req.Fee.IsNegative() || req.CPDPoints.IsNegative() {
		return nil, domainErrors.NewValidationError("fee", "fee and cpd_points must not be negative")
	}

	creator, err := s.members.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !creator.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Fee:         req.Fee,
		CPDPoints:   req.CPDPoints,
		Capacity:    req.Capacity,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("title", event.Title),
		zap.String("fee", event.Fee.String()))

	return event, nil
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.events.GetByID(ctx, eventID)
}

// ListUpcoming returns events that have not yet started.
func (s *EventService) ListUpcoming(ctx context.Context, limit, offset int) ([]model.Event, error) {
	if limit < 1 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	return s.events.ListUpcoming(ctx, time.Now(), limit, offset)
}

// Register signs a member up for an event. Free events confirm
// immediately and accrue the event's CPD points; paid events create a
// pending registration tied to a checkout reference.
func (s *EventService) Register(ctx context.Context, memberID, eventID uuid.UUID) (*RegisterResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.StartsAt.After(time.Now()) {
		return nil, domainErrors.NewValidationError("event_id", "event has already started")
	}

	if _, err := s.registrations.GetByEventAndMember(ctx, eventID, memberID); err == nil {
		return nil, domainErrors.NewValidationError("event_id", "already registered for this event")
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if event.Capacity > 0 {
		count, err := s.events.CountRegistrations(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= int64(event.Capacity) {
			return nil, domainErrors.NewValidationError("event_id", "event is fully booked")
		}
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if event.Free() {
		return s.registerFree(ctx, member, event)
	}
	return s.registerPaid(ctx, member, event)
}

func (s *EventService) registerFree(ctx context.Context, member *model.Member, event *model.Event) (*RegisterResult, error) {
	registration := &model.EventRegistration{
		EventID:  event.ID,
		MemberID: member.ID,
		Status:   model.RegistrationStatusConfirmed,
	}

	// The confirmed registration and its CPD accrual commit together.
	err := s.tx.WithinTransaction(ctx, func(repos domainRepo.Repositories) error {
		if err := repos.Registrations.Create(ctx, registration); err != nil {
			return err
		}

		if event.CPDPoints.GreaterThan(decimal.Zero) {
			now := time.Now()
			record := &model.CPDRecord{
				MemberID:  member.ID,
				Activity:  event.Title,
				Points:    event.CPDPoints,
				Year:      now.Year(),
				Source:    model.CPDSourceEvent,
				AwardedAt: now,
			}
			if err := repos.CPD.Create(ctx, record); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Free event registration confirmed",
		zap.String("event_id", event.ID.String()),
		zap.String("member_id", member.ID.String()))

	if s.dispatcher != nil {
		data := notification.TemplateData{Name: member.FullName(), EventTitle: event.Title}
		if _, err := s.dispatcher.Dispatch(member.Email, notification.TemplateEventRegistration, data); err != nil {
			s.logger.Warn("Registration notice failed", zap.Error(err))
		}
	}

	return &RegisterResult{Registration: registration}, nil
}

func (s *EventService) registerPaid(ctx context.Context, member *model.Member, event *model.Event) (*RegisterResult, error) {
	payment, err := s.payments.InitializePayment(ctx, &InitializePaymentRequest{
		MemberID:    member.ID,
		Email:       member.Email,
		Amount:      event.Fee,
		Description: "Event registration: " + event.Title,
		PaymentType: string(model.PaymentTypeEvent),
	})
	if err != nil {
		return nil, err
	}

	registration := &model.EventRegistration{
		EventID:          event.ID,
		MemberID:         member.ID,
		PaymentReference: payment.Reference,
		Status:           model.RegistrationStatusPending,
	}
	if err := s.registrations.Create(ctx, registration); err != nil {
		// The pending payment row stays behind; verifying it later finds
		// no registration and logs the mismatch.
		return nil, err
	}

	s.logger.Info("Paid event registration pending",
		zap.String("event_id", event.ID.String()),
		zap.String("member_id", member.ID.String()),
		zap.String("reference", payment.Reference))

	return &RegisterResult{Registration: registration, Payment: payment}, nil
}

// ListRegistrations returns the member's own registrations.
func (s *EventService) ListRegistrations(ctx context.Context, memberID uuid.UUID) ([]model.EventRegistration, error) {
	return s.registrations.ListByMember(ctx, memberID)
}
