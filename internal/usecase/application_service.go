package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	domainRepo "github.com/CIPMABUJA/hr-hub-backend/internal/domain/repository"
	"github.com/CIPMABUJA/hr-hub-backend/internal/notification"
)

// SubmitApplicationRequest is a member's membership intake submission.
type SubmitApplicationRequest struct {
	Category    string `json:"category" validate:"required"`
	Statement   string `json:"statement" validate:"required,min=20"`
	DocumentURL string `json:"document_url" validate:"omitempty,url"`
}

// ReviewApplicationRequest is an administrator's decision on an application.
type ReviewApplicationRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" validate:"max=500"`
}

// ApplicationService handles membership intake submissions and their
// administrator review.
type ApplicationService struct {
	applications domainRepo.ApplicationRepository
	members      domainRepo.MemberRepository
	memberships  *MembershipService
	dispatcher   *notification.Dispatcher
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	applications domainRepo.ApplicationRepository,
	members domainRepo.MemberRepository,
	memberships *MembershipService,
	dispatcher *notification.Dispatcher,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		members:      members,
		memberships:  memberships,
		dispatcher:   dispatcher,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Submit records a new application. A member can hold at most one open
// application at a time.
func (s *ApplicationService) Submit(ctx context.Context, memberID uuid.UUID, req *SubmitApplicationRequest) (*model.Application, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}
	category := model.MembershipCategory(req.Category)
	if !category.Valid() {
		return nil, domainErrors.NewValidationError("category", "unknown membership category")
	}

	if _, err := s.applications.GetOpenByMemberID(ctx, memberID); err == nil {
		return nil, domainErrors.NewValidationError("category", "an application is already under review")
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	application := &model.Application{
		MemberID:    memberID,
		Category:    category,
		Statement:   req.Statement,
		DocumentURL: req.DocumentURL,
		Status:      model.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info("Application submitted",
		zap.String("application_id", application.ID.String()),
		zap.String("member_id", memberID.String()),
		zap.String("category", req.Category))

	s.notify(ctx, memberID, notification.TemplateApplicationReceived, notification.TemplateData{
		Category: string(category),
	})

	return application, nil
}

// ListForMember returns the member's own applications, newest first.
func (s *ApplicationService) ListForMember(ctx context.Context, memberID uuid.UUID) ([]model.Application, error) {
	return s.applications.ListByMemberID(ctx, memberID)
}

// ListPending returns applications awaiting review for administrators.
func (s *ApplicationService) ListPending(ctx context.Context, limit, offset int) ([]model.Application, error) {
	if limit < 1 {
		limit = 50
	} else if limit > 200 {
		limit = 200
	}
	return s.applications.ListByStatus(ctx, model.ApplicationStatusPending, limit, offset)
}

// Review decides a pending application. The reviewer's admin role is
// re-checked here against the members table; the token claim alone is
// not trusted. Approval creates the applicant's pending membership with
// its member number.
func (s *ApplicationService) Review(ctx context.Context, reviewerID, applicationID uuid.UUID, req *ReviewApplicationRequest) (*model.Application, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domainErrors.NewValidationError("", err.Error())
	}

	reviewer, err := s.members.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewer.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != model.ApplicationStatusPending {
		return nil, domainErrors.NewValidationError("status", "application has already been reviewed")
	}

	now := time.Now()
	application.ReviewedBy = &reviewerID
	application.ReviewedAt = &now
	application.ReviewNote = req.Note

	if req.Approve {
		application.Status = model.ApplicationStatusApproved
	} else {
		application.Status = model.ApplicationStatusRejected
	}

	if err := s.applications.Update(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info("Application reviewed",
		zap.String("application_id", application.ID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.String("decision", string(application.Status)))

	if req.Approve {
		membership, err := s.memberships.CreatePending(ctx, application.MemberID, application.Category)
		if err != nil {
			// The review stands; membership creation is retried through
			// support rather than unwinding the decision.
			s.logger.Error("Failed to create membership for approved application",
				zap.String("application_id", application.ID.String()),
				zap.Error(err))
		} else {
			s.logger.Info("Membership pending activation",
				zap.String("member_number", membership.MemberNumber))
			s.notify(ctx, application.MemberID, notification.TemplateApplicationApproved, notification.TemplateData{
				Category: string(application.Category),
			})
		}
	} else {
		s.notify(ctx, application.MemberID, notification.TemplateApplicationRejected, notification.TemplateData{
			Category:   string(application.Category),
			ReviewNote: req.Note,
		})
	}

	return application, nil
}

// notify sends a templated email to the member. Delivery problems are
// logged, never surfaced to the caller.
func (s *ApplicationService) notify(ctx context.Context, memberID uuid.UUID, template notification.TemplateType, data notification.TemplateData) {
	if s.dispatcher == nil {
		return
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		s.logger.Warn("Notification skipped, member lookup failed",
			zap.String("member_id", memberID.String()),
			zap.Error(err))
		return
	}

	data.Name = member.FullName()
	if _, err := s.dispatcher.Dispatch(member.Email, template, data); err != nil {
		s.logger.Warn("Notification dispatch failed",
			zap.String("member_id", memberID.String()),
			zap.String("template", string(template)),
			zap.Error(err))
	}
}
