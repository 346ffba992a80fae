package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// AwardCPDRequest records a manual CPD accrual by an administrator.
type AwardCPDRequest struct {
	MemberID uuid.UUID       `json:"member_id" validate:"required"`
	Activity string          `json:"activity" validate:"required,max=255"`
	Points   decimal.Decimal `json:"points"`
	Year     int             `json:"year"`
}

// CPDSummary is a member's accrued points broken down by calendar year.
type CPDSummary struct {
	MemberID uuid.UUID                 `json:"member_id"`
	Totals   []domainRepo.CPDYearTotal `json:"totals"`
}

// CPDService tracks continuing-professional-development accruals. Event
// attendance accrues automatically; administrators award the rest.
type CPDService struct {
	cpd      domainRepo.CPDRepository
	members  domainRepo.MemberRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCPDService creates a new CPD service instance
func NewCPDService(cpd domainRepo.CPDRepository, members domainRepo.MemberRepository, logger *zap.Logger) *CPDService {
	return &CPDService{
		cpd:      cpd,
		members:  members,
		validate: validator.New(),
		logger:   logger,
	}
}

// Award records a manual accrual. The caller's admin role is re-checked
// against the members table.
func (s *CPDService) Award(ctx context.Context, awarderID uuid.UUID, req *AwardCPDRequest) (*model.CPDRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}
	if req.Points.LessThanOrEqual(decimal.Zero) {
		return nil, domainErrors.NewValidationError("points", "must be greater than zero")
	}

	awarder, err := s.members.GetByID(ctx, awarderID)
	if err != nil {
		return nil, err
	}
	if !awarder.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}

	// The member must exist before points can be hung on them.
	if _, err := s.members.GetByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	now := time.Now()
	year := req.Year
	if year == 0 {
		year = now.Year()
	}

	record := &model.CPDRecord{
		MemberID:  req.MemberID,
		Activity:  req.Activity,
		Points:    req.Points,
		Year:      year,
		Source:    model.CPDSourceManual,
		AwardedAt: now,
	}
	if err := s.cpd.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("CPD points awarded",
		zap.String("member_id", req.MemberID.String()),
		zap.String("points", req.Points.String()),
		zap.Int("year", year),
		zap.String("awarded_by", awarderID.String()))

	return record, nil
}

// ListForMember returns a member's CPD records, optionally filtered to a
// calendar year (zero means all years).
func (s *CPDService) ListForMember(ctx context.Context, memberID uuid.UUID, year int) ([]model.CPDRecord, error) {
	return s.cpd.ListByMember(ctx, memberID, year)
}

// Summary returns the member's per-year totals.
func (s *CPDService) Summary(ctx context.Context, memberID uuid.UUID) (*CPDSummary, error) {
	totals, err := s.cpd.TotalsByYear(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &CPDSummary{MemberID: memberID, Totals: totals}, nil
}
