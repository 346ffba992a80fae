package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// PaymentRepository persists payment attempts. Payments are never deleted;
// the financial audit trail is append-plus-status-transition only.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByReference(ctx context.Context, reference string) (*model.Payment, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]model.Payment, error)
	List(ctx context.Context, status model.PaymentStatus, limit, offset int) ([]model.Payment, error)

	// ListStalePending returns pending payments created before the cutoff,
	// oldest first, for gateway reconciliation.
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error)

	// MarkCompleted transitions reference from pending to completed as a
	// single conditional update. Returns false when no pending row matched,
	// which is how a duplicate callback loses the race safely.
	MarkCompleted(ctx context.Context, reference, method string, paidAt time.Time, gatewayData model.JSONB) (bool, error)

	// MarkFailed transitions reference from pending to failed. Only an
	// explicit failure signal from the gateway should drive this.
	MarkFailed(ctx context.Context, reference, reason string) (bool, error)
}
