package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
)

// ProvisionMemberRequest carries the identity-provider claims used to
// create a member record on first sight of a new subject.
type ProvisionMemberRequest struct {
	SubjectID string `validate:"required"`
	Email     string `validate:"required,email"`
	FirstName string
	LastName  string
}

// UpdateProfileRequest is a member's own profile edit.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"max=30"`
}

// MemberService manages member identities. Authentication lives with the
// identity provider; this service owns the local record each subject maps
// to.
type MemberService struct {
	members  domainRepo.MemberRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewMemberService creates a new member service instance
func NewMemberService(members domainRepo.MemberRepository, logger *zap.Logger) *MemberService {
	return &MemberService{
		members:  members,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetOrCreateFromSubject resolves the local member for an authenticated
// subject, provisioning one on first contact.
func (s *MemberService) GetOrCreateFromSubject(ctx context.Context, req *ProvisionMemberRequest) (*model.Member, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}

	member, err := s.members.GetBySubjectID(ctx, req.SubjectID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	firstName := req.FirstName
	if firstName == "" {
		// Fall back to the mailbox name until the member fills in their
		// profile.
		firstName = strings.SplitN(req.Email, "@", 2)[0]
	}

	member = &model.Member{
		SubjectID: req.SubjectID,
		Email:     strings.ToLower(req.Email),
		FirstName: firstName,
		LastName:  req.LastName,
		Role:      model.MemberRoleMember,
	}
	if err := s.members.Create(ctx, member); err != nil {
		// Two first requests can race on provisioning; the loser rereads.
		if existing, lookupErr := s.members.GetBySubjectID(ctx, req.SubjectID); lookupErr == nil {
			return existing, nil
		}
		return nil, err
	}

	s.logger.Info("Member provisioned",
		zap.String("member_id", member.ID.String()),
		zap.String("subject_id", req.SubjectID))

	return member, nil
}

// Get returns one member by id.
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	return s.members.GetByID(ctx, id)
}

// UpdateProfile applies a member's own profile edit.
func (s *MemberService) UpdateProfile(ctx context.Context, memberID uuid.UUID, req *UpdateProfileRequest) (*model.Member, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Phone = req.Phone

	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}
