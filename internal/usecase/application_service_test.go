package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/CIPMABUJA/hr-hub-backend/internal/domain/errors"
	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
)

type applicationServiceFixture struct {
	applications *mockApplicationRepo
	members      *mockMemberRepo
	memberships  *mockMembershipRepo
	service      *ApplicationService
}

func newApplicationServiceFixture() *applicationServiceFixture {
	f := &applicationServiceFixture{
		applications: new(mockApplicationRepo),
		members:      new(mockMemberRepo),
		memberships:  new(mockMembershipRepo),
	}
	membershipService := NewMembershipService(f.memberships, zap.NewNop())
	f.service = NewApplicationService(f.applications, f.members, membershipService, nil, zap.NewNop())
	return f
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()

	validRequest := func() *SubmitApplicationRequest {
		return &SubmitApplicationRequest{
			Category:  "associate",
			Statement: "Five years of HR generalist practice in the public sector.",
		}
	}

	t.Run("creates a pending application", func(t *testing.T) {
		f := newApplicationServiceFixture()

		f.applications.On("GetOpenByMemberID", ctx, memberID).Return(nil, domainErrors.ErrNotFound)
		f.applications.On("Create", ctx, mock.AnythingOfType("*model.Application")).Return(nil)

		application, err := f.service.Submit(ctx, memberID, validRequest())

		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusPending, application.Status)
		assert.Equal(t, model.CategoryAssociate, application.Category)
	})

	t.Run("rejects a second open application", func(t *testing.T) {
		f := newApplicationServiceFixture()

		f.applications.On("GetOpenByMemberID", ctx, memberID).
			Return(&model.Application{Status: model.ApplicationStatusPending}, nil)

		_, err := f.service.Submit(ctx, memberID, validRequest())

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
		f.applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newApplicationServiceFixture()

		req := validRequest()
		req.Category = "honorary"

		_, err := f.service.Submit(ctx, memberID, req)

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
	})
}

func TestReviewApplication(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	applicantID := uuid.New()
	applicationID := uuid.New()

	admin := &model.Member{ID: adminID, Role: model.MemberRoleAdmin, FirstName: "Ngozi", LastName: "Eze", Email: "ngozi@cipmabuja.org.ng"}
	applicant := &model.Member{ID: applicantID, Role: model.MemberRoleMember, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"}

	pendingApplication := func() *model.Application {
		return &model.Application{
			ID:       applicationID,
			MemberID: applicantID,
			Category: model.CategoryAssociate,
			Status:   model.ApplicationStatusPending,
		}
	}

	t.Run("approval creates a pending membership with a member number", func(t *testing.T) {
		f := newApplicationServiceFixture()

		f.members.On("GetByID", ctx, adminID).Return(admin, nil)
		f.members.On("GetByID", ctx, applicantID).Return(applicant, nil)
		f.applications.On("GetByID", ctx, applicationID).Return(pendingApplication(), nil)
		f.applications.On("Update", ctx, mock.AnythingOfType("*model.Application")).Return(nil)
		f.memberships.On("GetByMemberID", ctx, applicantID).Return(nil, domainErrors.ErrNotFound)
		f.memberships.On("CountIssuedInYear", ctx, mock.AnythingOfType("int")).Return(int64(41), nil)

		var created *model.Membership
		f.memberships.On("Create", ctx, mock.AnythingOfType("*model.Membership")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.Membership)
			}).
			Return(nil)

		reviewed, err := f.service.Review(ctx, adminID, applicationID, &ReviewApplicationRequest{Approve: true})

		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusApproved, reviewed.Status)
		assert.Equal(t, &adminID, reviewed.ReviewedBy)
		require.NotNil(t, reviewed.ReviewedAt)

		require.NotNil(t, created)
		assert.Equal(t, model.MembershipStatusPending, created.Status)
		assert.Equal(t, model.CategoryAssociate, created.Category)
		assert.Regexp(t, `^CIPMA-ABJ-\d{4}-0042$`, created.MemberNumber)
	})

	t.Run("rejection records the note without creating a membership", func(t *testing.T) {
		f := newApplicationServiceFixture()

		f.members.On("GetByID", ctx, adminID).Return(admin, nil)
		f.members.On("GetByID", ctx, applicantID).Return(applicant, nil)
		f.applications.On("GetByID", ctx, applicationID).Return(pendingApplication(), nil)
		f.applications.On("Update", ctx, mock.AnythingOfType("*model.Application")).Return(nil)

		reviewed, err := f.service.Review(ctx, adminID, applicationID, &ReviewApplicationRequest{
			Approve: false,
			Note:    "Supporting documents incomplete",
		})

		require.NoError(t, err)
		assert.Equal(t, model.ApplicationStatusRejected, reviewed.Status)
		assert.Equal(t, "Supporting documents incomplete", reviewed.ReviewNote)
		f.memberships.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non-admin reviewer is forbidden regardless of claims", func(t *testing.T) {
		f := newApplicationServiceFixture()

		f.members.On("GetByID", ctx, applicantID).Return(applicant, nil)

		_, err := f.service.Review(ctx, applicantID, applicationID, &ReviewApplicationRequest{Approve: true})

		assert.ErrorIs(t, err, domainErrors.ErrForbidden)
		f.applications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("already reviewed application cannot be decided twice", func(t *testing.T) {
		f := newApplicationServiceFixture()

		decided := pendingApplication()
		decided.Status = model.ApplicationStatusApproved

		f.members.On("GetByID", ctx, adminID).Return(admin, nil)
		f.applications.On("GetByID", ctx, applicationID).Return(decided, nil)

		_, err := f.service.Review(ctx, adminID, applicationID, &ReviewApplicationRequest{Approve: false})

		require.Error(t, err)
		assert.True(t, domainErrors.IsValidation(err))
	})
}
