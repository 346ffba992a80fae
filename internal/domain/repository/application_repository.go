package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// ApplicationRepository persists membership intake submissions.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	GetOpenByMemberID(ctx context.Context, memberID uuid.UUID) (*model.Application, error)
	ListByMemberID(ctx context.Context, memberID uuid.UUID) ([]model.Application, error)
	ListByStatus(ctx context.Context, status model.ApplicationStatus, limit, offset int) ([]model.Application, error)
	Update(ctx context.Context, application *model.Application) error
}
