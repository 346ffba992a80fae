package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// MemberRepository persists member identities. SubjectID links the hosted
// identity provider's user record to ours.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	GetBySubjectID(ctx context.Context, subjectID string) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	Update(ctx context.Context, member *model.Member) error
}
