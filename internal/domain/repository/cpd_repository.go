package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

// CPDYearTotal is the accrued points for one calendar year.
type CPDYearTotal struct {
	Year   int             `json:"year"`
	Points decimal.Decimal `json:"points"`
}

// CPDRepository persists continuing-professional-development accruals.
type CPDRepository interface {
	Create(ctx context.Context, record *model.CPDRecord) error
	ListByMember(ctx context.Context, memberID uuid.UUID, year int) ([]model.CPDRecord, error)
	TotalsByYear(ctx context.Context, memberID uuid.UUID) ([]CPDYearTotal, error)
}
