package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/gateway"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

type eventServiceFixture struct {
	events        *mockEventRepo
	registrations *mockRegistrationRepo
	members       *mockMemberRepo
	cpd           *mockCPDRepo
	payments      *mockPaymentRepo
	gateway       *mockGateway
	service       *EventService
}

func newEventServiceFixture() *eventServiceFixture {
	f := &eventServiceFixture{
		events:        new(mockEventRepo),
		registrations: new(mockRegistrationRepo),
		members:       new(mockMemberRepo),
		cpd:           new(mockCPDRepo),
		payments:      new(mockPaymentRepo),
		gateway:       new(mockGateway),
	}
	tx := &passthroughTx{repos: domainRepo.Repositories{
		Payments:      f.payments,
		Members:       f.members,
		Registrations: f.registrations,
		CPD:           f.cpd,
	}}
	paymentService := NewPaymentService(
		f.payments, f.members, tx, f.gateway, nil,
		"https://portal.cipmabuja.org.ng/payments/callback",
		zap.NewNop(),
	)
	f.service = NewEventService(f.events, f.registrations, f.members, tx, paymentService, nil, zap.NewNop())
	return f
}

func TestRegisterForEvent(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	eventID := uuid.New()

	member := &model.Member{ID: memberID, Email: "ada@example.com", FirstName: "Ada", LastName: "Obi"}

	upcomingEvent := func(fee int64) *model.Event {
		return &model.Event{
			ID:        eventID,
			Title:     "Quarterly HR Forum",
			StartsAt:  time.Now().Add(72 * time.Hour),
			EndsAt:    time.Now().Add(80 * time.Hour),
			Fee:       decimal.NewFromInt(fee),
			CPDPoints: decimal.NewFromInt(3),
		}
	}

	t.Run("free event confirms immediately and accrues CPD", func(t *testing.T) {
		f := newEventServiceFixture()

		f.events.On("GetByID", ctx, eventID).Return(upcomingEvent(0), nil)
		f.registrations.On("GetByEventAndMember", ctx, eventID, memberID).Return(nil, domainErrors.ErrNotFound)
		f.members.On("GetByID", ctx, memberID).Return(member, nil)
		f.registrations.On("Create", ctx, mock.AnythingOfType("*model.EventRegistration")).Return(nil)
		f.cpd.On("Create", ctx, mock.AnythingOfType("*model.CPDRecord")).Return(nil)

		result, err := f.service.Register(ctx, memberID, eventID)

		require.NoError(t, err)
		assert.Equal(t, model.RegistrationStatusConfirmed, result.Registration.Status)
		assert.Nil(t, result.Payment)
		f.cpd.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*model.CPDRecord"))
	})

	t.Run("free event CPD failure fails the registration with it", func(t *testing.T) {
		f := newEventServiceFixture()

		f.events.On("GetByID", ctx, eventID).Return(upcomingEvent(0), nil)
		f.registrations.On("GetByEventAndMember", ctx, eventID, memberID).Return(nil, domainErrors.ErrNotFound)
		f.members.On("GetByID", ctx, memberID).Return(member, nil)
		f.registrations.On("Create", ctx, mock.AnythingOfType("*model.EventRegistration")).Return(nil)
		f.cpd.On("Create", ctx, mock.AnythingOfType("*model.CPDRecord")).
			Return(domainErrors.NewPersistenceError("create cpd record", assert.AnError))

		_, err := f.service.Register(ctx, memberID, eventID)

		require.Error(t, err)
		assert.True(t, domainErrors.IsPersistence(err))
	})

	t.Run("paid event creates pending registration with checkout", func(t *testing.T) {
		f := newEventServiceFixture()

		f.events.On("GetByID", ctx, eventID).Return(upcomingEvent(15000), nil)
		f.registrations.On("GetByEventAndMember", ctx, eventID, memberID).Return(nil, domainErrors.ErrNotFound)
		f.members.On("GetByID", ctx, memberID).Return(member, nil)
		f.payments.On("Create", ctx, mock.AnythingOfType("*model.Payment")).Return(nil)
		f.gateway.On("Initialize", ctx, mock.AnythingOfType("*gateway.InitializeRequest")).
			Return(&gateway.InitializeResult{
				AuthorizationURL: "https://checkout.paystack.com/xyz789",
				AccessCode:       "xyz789",
			}, nil)

		var registration *model.EventRegistration
		f.registrations.On("Create", ctx, mock.AnythingOfType("*model.EventRegistration")).
			Run(func(args mock.Arguments) {
				registration = args.Get(1).(*model.EventRegistration)
			}).
			Return(nil)

		result, err := f.service.Register(ctx, memberID, eventID)

		require.NoError(t, err)
		require.NotNil(t, result.Payment)
		assert.Equal(t, "https://checkout.paystack.com/xyz789", result.Payment.AuthorizationURL)

		require.NotNil(t, registration)
		assert.Equal(t, model.RegistrationStatusPending, registration.Status)
		assert.Equal(t, result.Payment.Reference, registration.PaymentReference)
		f.cpd.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		f := newEventServiceFixture()

		f.events.On("GetByID", ctx, eventID).Return(upcomingEvent(0), nil)
		f.registrations.On("GetByEventAndMember", ctx, eventID, memberID).
			Return(&model.EventRegistration{Status: model.RegistrationStatusConfirmed}, nil)

		_, err := f.service.Register(ctx, memberID, eventID)

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
	})

	t.Run("full event is rejected", func(t *testing.T) {
		f := newEventServiceFixture()

		event := upcomingEvent(0)
		event.Capacity = 30

		f.events.On("GetByID", ctx, eventID).Return(event, nil)
		f.registrations.On("GetByEventAndMember", ctx, eventID, memberID).Return(nil, domainErrors.ErrNotFound)
		f.events.On("CountRegistrations", ctx, eventID).Return(int64(30), nil)

		_, err := f.service.Register(ctx, memberID, eventID)

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
		f.registrations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("started event is rejected", func(t *testing.T) {
		f := newEventServiceFixture()

		event := upcomingEvent(0)
		event.StartsAt = time.Now().Add(-time.Hour)

		f.events.On("GetByID", ctx, eventID).Return(event, nil)

		_, err := f.service.Register(ctx, memberID, eventID)

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
	})
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	memberID := uuid.New()

	validRequest := func() *CreateEventRequest {
		return &CreateEventRequest{
			Title:    "Quarterly HR Forum",
			Venue:    "Transcorp Hilton, Abuja",
			StartsAt: time.Now().Add(14 * 24 * time.Hour),
			EndsAt:   time.Now().Add(14*24*time.Hour + 8*time.Hour),
			Fee:      decimal.NewFromInt(15000),
			Capacity: 120,
		}
	}

	t.Run("admin can create an event", func(t *testing.T) {
		f := newEventServiceFixture()

		f.members.On("GetByID", ctx, adminID).
			Return(&model.Member{ID: adminID, Role: model.MemberRoleAdmin}, nil)
		f.events.On("Create", ctx, mock.AnythingOfType("*model.Event")).Return(nil)

		event, err := f.service.Create(ctx, adminID, validRequest())

		require.NoError(t, err)
		assert.Equal(t, "Quarterly HR Forum", event.Title)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		f := newEventServiceFixture()

		f.members.On("GetByID", ctx, memberID).
			Return(&model.Member{ID: memberID, Role: model.MemberRoleMember}, nil)

		_, err := f.service.Create(ctx, memberID, validRequest())

		assert.ErrorIs(t, err, domainErrors.ErrForbidden)
		f.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newEventServiceFixture()

		req := validRequest()
		req.EndsAt = req.StartsAt.Add(-time.Hour)

		_, err := f.service.Create(ctx, adminID, req)

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
	})
}
