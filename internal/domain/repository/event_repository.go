package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// EventRepository persists branch events.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]model.Event, error)
	CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// EventRegistrationRepository persists event registrations.
type EventRegistrationRepository interface {
	Create(ctx context.Context, registration *model.EventRegistration) error
	GetByEventAndMember(ctx context.Context, eventID, memberID uuid.UUID) (*model.EventRegistration, error)
	GetByPaymentReference(ctx context.Context, reference string) (*model.EventRegistration, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.EventRegistration, error)

	// Confirm transitions a registration to confirmed once its fee payment
	// is verified (or immediately for free events).
	Confirm(ctx context.Context, registrationID uuid.UUID) error
}
