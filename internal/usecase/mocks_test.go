package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/gateway"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByReference(ctx context.Context, reference string) (*model.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListByMember(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]model.Payment, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *mockPaymentRepo) List(ctx context.Context, status model.PaymentStatus, limit, offset int) ([]model.Payment, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *mockPaymentRepo) MarkCompleted(ctx context.Context, reference, method string, paidAt time.Time, gatewayData model.JSONB) (bool, error) {
	args := m.Called(ctx, reference, method, paidAt, gatewayData)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) MarkFailed(ctx context.Context, reference, reason string) (bool, error) {
	args := m.Called(ctx, reference, reason)
	return args.Bool(0), args.Error(1)
}

type mockMemberRepo struct {
	mock.Mock
}

func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) GetBySubjectID(ctx context.Context, subjectID string) (*model.Member, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func (m *mockMemberRepo) Update(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type mockMembershipRepo struct {
	mock.Mock
}

func (m *mockMembershipRepo) Create(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipRepo) GetByMemberID(ctx context.Context, memberID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Membership), args.Error(1)
}

func (m *mockMembershipRepo) Update(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipRepo) ActivateWithExpiry(ctx context.Context, memberID uuid.UUID, joinedAt, expiresAt time.Time) error {
	args := m.Called(ctx, memberID, joinedAt, expiresAt)
	return args.Error(0)
}

func (m *mockMembershipRepo) CountIssuedInYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

type mockApplicationRepo struct {
	mock.Mock
}

func (m *mockApplicationRepo) Create(ctx context.Context, application *model.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *mockApplicationRepo) GetOpenByMemberID(ctx context.Context, memberID uuid.UUID) (*model.Application, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *mockApplicationRepo) ListByMemberID(ctx context.Context, memberID uuid.UUID) ([]model.Application, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *mockApplicationRepo) ListByStatus(ctx context.Context, status model.ApplicationStatus, limit, offset int) ([]model.Application, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *mockApplicationRepo) Update(ctx context.Context, application *model.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]model.Event, error) {
	args := m.Called(ctx, from, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *mockEventRepo) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRegistrationRepo struct {
	mock.Mock
}

func (m *mockRegistrationRepo) Create(ctx context.Context, registration *model.EventRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *mockRegistrationRepo) GetByEventAndMember(ctx context.Context, eventID, memberID uuid.UUID) (*model.EventRegistration, error) {
	args := m.Called(ctx, eventID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventRegistration), args.Error(1)
}

func (m *mockRegistrationRepo) GetByPaymentReference(ctx context.Context, reference string) (*model.EventRegistration, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventRegistration), args.Error(1)
}

func (m *mockRegistrationRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.EventRegistration, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventRegistration), args.Error(1)
}

func (m *mockRegistrationRepo) Confirm(ctx context.Context, registrationID uuid.UUID) error {
	args := m.Called(ctx, registrationID)
	return args.Error(0)
}

type mockCPDRepo struct {
	mock.Mock
}

func (m *mockCPDRepo) Create(ctx context.Context, record *model.CPDRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockCPDRepo) ListByMember(ctx context.Context, memberID uuid.UUID, year int) ([]model.CPDRecord, error) {
	args := m.Called(ctx, memberID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CPDRecord), args.Error(1)
}

func (m *mockCPDRepo) TotalsByYear(ctx context.Context, memberID uuid.UUID) ([]domainRepo.CPDYearTotal, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainRepo.CPDYearTotal), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Initialize(ctx context.Context, req *gateway.InitializeRequest) (*gateway.InitializeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.InitializeResult), args.Error(1)
}

func (m *mockGateway) Verify(ctx context.Context, reference string) (*gateway.VerifyResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.VerifyResult), args.Error(1)
}

func (m *mockGateway) Name() string {
	return "paystack"
}

// passthroughTx runs the unit of work without a real transaction,
// handing it the same mocks the test asserts on.
type passthroughTx struct {
	repos domainRepo.Repositories
}

func (t *passthroughTx) WithinTransaction(ctx context.Context, fn func(repos domainRepo.Repositories) error) error {
	return fn(t.repos)
}
