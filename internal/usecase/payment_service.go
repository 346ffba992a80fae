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
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/gateway"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
	"github.com/CIPMABUJA/hr-hub-backend/internal/messaging"
)

// InitializePaymentRequest is the caller's payment intent.
type InitializePaymentRequest struct {
	MemberID    uuid.UUID       `json:"member_id"`
	Email       string          `json:"email" validate:"required,email"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required"`
	PaymentType string          `json:"payment_type" validate:"required"`
}

// InitializePaymentResult carries the redirect target back to the caller.
type InitializePaymentResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyPaymentResult reports the outcome of a verification attempt.
type VerifyPaymentResult struct {
	Success   bool                `json:"success"`
	Reference string              `json:"reference"`
	Status    model.PaymentStatus `json:"status"`
}

// PaymentService owns the payment initialize/verify/reconcile sequence.
// Ordering is store-write-then-gateway-call on initialization so every
// gateway attempt is traceable to a known reference, and verification
// applies its side effects inside one transaction.
type PaymentService struct {
	payments    domainRepo.PaymentRepository
	members     domainRepo.MemberRepository
	tx          domainRepo.TransactionManager
	gateway     gateway.Client
	bus         messaging.Bus
	validate    *validator.Validate
	callbackURL string
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(
	payments domainRepo.PaymentRepository,
	members domainRepo.MemberRepository,
	tx domainRepo.TransactionManager,
	gatewayClient gateway.Client,
	bus messaging.Bus,
	callbackURL string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:    payments,
		members:     members,
		tx:          tx,
		gateway:     gatewayClient,
		bus:         bus,
		validate:    validator.New(),
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// InitializePayment creates a pending payment record and obtains a hosted
// checkout URL. On gateway failure the pending row remains; it is picked
// up later by the reconciler.
func (s *PaymentService) InitializePayment(ctx context.Context, req *InitializePaymentRequest) (*InitializePaymentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainErrors.NewValidationError("amount", "must be greater than zero")
	}
	paymentType := model.PaymentType(req.PaymentType)
	if !paymentType.Valid() {
		return nil, domainErrors.NewValidationError("payment_type", "must be one of membership, event, cpd")
	}

	reference := GenerateReference()

	payment := &model.Payment{
		Reference:   reference,
		MemberID:    req.MemberID,
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    "NGN",
		Status:      model.PaymentStatusPending,
		PaymentType: paymentType,
		Description: req.Description,
	}

	// Store write comes first: a gateway attempt without a local record
	// would be untraceable.
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Payment initialized",
		zap.String("reference", reference),
		zap.String("member_id", req.MemberID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("payment_type", req.PaymentType))

	result, err := s.gateway.Initialize(ctx, &gateway.InitializeRequest{
		Email:       req.Email,
		Amount:      req.Amount,
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata: map[string]interface{}{
			"payment_type": req.PaymentType,
			"member_id":    req.MemberID.String(),
		},
	})
	if err != nil {
		// The pending row stays behind as an audit artifact; the
		// reconciler revisits it.
		s.logger.Warn("Gateway initialization failed, pending record retained",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, err
	}

	return &InitializePaymentResult{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        reference,
	}, nil
}

// VerifyPayment fetches the authoritative status for a reference and, on
// success, settles the payment and its dependent state atomically.
// Calling it again for an already-completed reference is a no-op success:
// no double extension, no second event.
func (s *PaymentService) VerifyPayment(ctx context.Context, reference string) (*VerifyPaymentResult, error) {
	if reference == "" {
		return nil, domainErrors.NewValidationError("reference", "is required")
	}

	payment, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			s.logger.Warn("Verification requested for unknown reference",
				zap.String("reference", reference))
			return &VerifyPaymentResult{Success: false, Reference: reference}, nil
		}
		return nil, err
	}

	if payment.Status == model.PaymentStatusCompleted {
		s.logger.Info("Verification short-circuit: already completed",
			zap.String("reference", reference))
		return &VerifyPaymentResult{Success: true, Reference: reference, Status: payment.Status}, nil
	}
	if payment.Terminal() {
		return &VerifyPaymentResult{Success: false, Reference: reference, Status: payment.Status}, nil
	}

	verification, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	if verification.Status != gateway.StatusSuccess {
		// Only an explicit terminal signal from the gateway terminalizes
		// the row; ambiguous states stay pending for the caller to retry.
		if verification.Status.Definitive() {
			if _, err := s.payments.MarkFailed(ctx, reference, string(verification.Status)); err != nil {
				s.logger.Error("Failed to record gateway failure",
					zap.String("reference", reference),
					zap.Error(err))
			}
		}
		s.logger.Info("Verification returned non-success",
			zap.String("reference", reference),
			zap.String("gateway_status", string(verification.Status)))
		return &VerifyPaymentResult{Success: false, Reference: reference, Status: payment.Status}, nil
	}

	paidAt := time.Now()
	if verification.PaidAt != nil {
		paidAt = *verification.PaidAt
	}

	event, err := s.settle(ctx, payment, verification, paidAt)
	if err != nil {
		return nil, err
	}

	if event != nil {
		s.publishVerified(ctx, *event)
	}

	return &VerifyPaymentResult{Success: true, Reference: reference, Status: model.PaymentStatusCompleted}, nil
}

// settle applies the completed transition and every dependent update in a
// single transaction: all of it commits or none of it does. A nil event
// with nil error means another verification won the race and already
// settled; the caller still reports success.
func (s *PaymentService) settle(ctx context.Context, payment *model.Payment, verification *gateway.VerifyResult, paidAt time.Time) (*messaging.PaymentVerifiedEvent, error) {
	var event *messaging.PaymentVerifiedEvent

	err := s.tx.WithinTransaction(ctx, func(repos domainRepo.Repositories) error {
		gatewayData := model.JSONB{
			"channel":        verification.Channel,
			"gateway_status": string(verification.Status),
		}

		transitioned, err := repos.Payments.MarkCompleted(ctx, payment.Reference, s.gateway.Name(), paidAt, gatewayData)
		if err != nil {
			return err
		}
		if !transitioned {
			// Concurrent callback already settled this reference.
			s.logger.Info("Settlement skipped, reference already transitioned",
				zap.String("reference", payment.Reference))
			return nil
		}

		event = &messaging.PaymentVerifiedEvent{
			Reference:   payment.Reference,
			PaymentType: string(payment.PaymentType),
			Amount:      payment.Amount.StringFixed(2),
			Currency:    payment.Currency,
			Email:       payment.Email,
			MemberID:    payment.MemberID.String(),
			Description: payment.Description,
			PaidAt:      paidAt,
		}
		if member, err := repos.Members.GetByID(ctx, payment.MemberID); err == nil {
			event.MemberName = member.FullName()
		}

		switch payment.PaymentType {
		case model.PaymentTypeMembership:
			// One calendar year from the time of verification, overwriting
			// any prior expiry.
			expiresAt := paidAt.AddDate(1, 0, 0)
			switch err := repos.Memberships.ActivateWithExpiry(ctx, payment.MemberID, paidAt, expiresAt); {
			case err == nil:
				event.MembershipExpiresAt = expiresAt.Format("2 January 2006")
			case errors.Is(err, domainErrors.ErrNotFound):
				// Dues paid before any membership record exists. The money
				// is recorded; activation waits for the application review.
				s.logger.Warn("Membership payment has no membership record",
					zap.String("reference", payment.Reference),
					zap.String("member_id", payment.MemberID.String()))
			default:
				return err
			}
		case model.PaymentTypeEvent:
			if err := s.confirmEventRegistration(ctx, repos, payment, paidAt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *PaymentService) confirmEventRegistration(ctx context.Context, repos domainRepo.Repositories, payment *model.Payment, paidAt time.Time) error {
	registration, err := repos.Registrations.GetByPaymentReference(ctx, payment.Reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			// An event payment without a registration is unusual but not
			// fatal; the money is still recorded.
			s.logger.Warn("Event payment has no registration",
				zap.String("reference", payment.Reference))
			return nil
		}
		return err
	}

	if err := repos.Registrations.Confirm(ctx, registration.ID); err != nil {
		return err
	}

	if registration.Event != nil && registration.Event.CPDPoints.GreaterThan(decimal.Zero) {
		record := &model.CPDRecord{
			MemberID:  payment.MemberID,
			Activity:  registration.Event.Title,
			Points:    registration.Event.CPDPoints,
			Year:      paidAt.Year(),
			Source:    model.CPDSourceEvent,
			AwardedAt: paidAt,
		}
		if err := repos.CPD.Create(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

// publishVerified emits the settlement event. Publishing is best effort;
// the payment outcome is already durable.
func (s *PaymentService) publishVerified(ctx context.Context, event messaging.PaymentVerifiedEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, messaging.PaymentVerifiedChannel, event); err != nil {
		s.logger.Warn("Failed to publish payment verified event",
			zap.String("reference", event.Reference),
			zap.Error(err))
	}
}

// GetPayment retrieves a payment by reference for its owner
func (s *PaymentService) GetPayment(ctx context.Context, memberID uuid.UUID, reference string) (*model.Payment, error) {
	payment, err := s.payments.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.MemberID != memberID {
		return nil, domainErrors.ErrNotFound
	}
	return payment, nil
}

// ListMemberPayments retrieves a member's payment history
func (s *PaymentService) ListMemberPayments(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]model.Payment, error) {
	if limit < 1 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	return s.payments.ListByMember(ctx, memberID, limit, offset)
}

// ListPayments retrieves payments across members for administrators
func (s *PaymentService) ListPayments(ctx context.Context, status model.PaymentStatus, limit, offset int) ([]model.Payment, error) {
	if limit < 1 {
		limit = 50
	} else if limit > 200 {
		limit = 200
	}
	return s.payments.List(ctx, status, limit, offset)
}
