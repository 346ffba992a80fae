package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// MembershipView is the membership standing with its derived status
// resolved. Clients read EffectiveStatus, not the stored value.
type MembershipView struct {
	Membership      *model.Membership      `json:"membership"`
	EffectiveStatus model.MembershipStatus `json:"effective_status"`
}

// MembershipService reads and derives membership standings. Activation
// itself happens inside payment settlement; this service answers the
// questions around it.
type MembershipService struct {
	memberships domainRepo.MembershipRepository
	logger      *zap.Logger
}

// NewMembershipService creates a new membership service instance
func NewMembershipService(memberships domainRepo.MembershipRepository, logger *zap.Logger) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		logger:      logger,
	}
}

// GetForMember returns the member's standing with expiry applied at read
// time. A member without a membership reads as not found.
func (s *MembershipService) GetForMember(ctx context.Context, memberID uuid.UUID) (*MembershipView, error) {
	membership, err := s.memberships.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &MembershipView{
		Membership:      membership,
		EffectiveStatus: membership.EffectiveStatus(time.Now()),
	}, nil
}

// NextMemberNumber derives the next sequential member number for the
// given join year, formatted CIPMA-ABJ-<year>-<sequence>.
func (s *MembershipService) NextMemberNumber(ctx context.Context, year int) (string, error) {
	issued, err := s.memberships.CountIssuedInYear(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CIPMA-ABJ-%d-%04d", year, issued+1), nil
}

// CreatePending records an approved applicant's membership in pending
// state. It becomes active when the first dues payment verifies.
func (s *MembershipService) CreatePending(ctx context.Context, memberID uuid.UUID, category model.MembershipCategory) (*model.Membership, error) {
	if !category.Valid() {
		return nil, domainErrors.NewValidationError("category", "unknown membership category")
	}

	if existing, err := s.memberships.GetByMemberID(ctx, memberID); err == nil {
		// One membership per member; approval of a later application
		// upgrades the category in place.
		existing.Category = category
		if err := s.memberships.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	number, err := s.NextMemberNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	membership := &model.Membership{
		MemberID:     memberID,
		Category:     category,
		Status:       model.MembershipStatusPending,
		MemberNumber: number,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.logger.Info("Membership created",
		zap.String("member_id", memberID.String()),
		zap.String("member_number", number),
		zap.String("category", string(category)))

	return membership, nil
}
