package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

type mockMemberResolver struct {
	mock.Mock
}

func (m *mockMemberResolver) GetOrCreateFromSubject(ctx context.Context, req *usecase.ProvisionMemberRequest) (*model.Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}

func signToken(t *testing.T, secret, subject, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         subject,
		"email":       email,
		"given_name":  "Ada",
		"family_name": "Obi",
		"exp":         time.Now().Add(time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runMiddleware(t *testing.T, config JWTConfig, authorization string) (*httptest.ResponseRecorder, *model.Member) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/memberships/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *model.Member
	handler := JWTMiddleware(config)(func(c echo.Context) error {
		member, err := GetMemberFromContext(c)
		assert.NoError(t, err)
		resolved = member
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	return rec, resolved
}

func TestJWTMiddleware(t *testing.T) {
	secret := "test-secret"
	memberID := uuid.New()

	t.Run("valid token resolves the member", func(t *testing.T) {
		resolver := new(mockMemberResolver)
		resolver.On("GetOrCreateFromSubject", mock.Anything, mock.MatchedBy(func(req *usecase.ProvisionMemberRequest) bool {
			return req.SubjectID == "auth0|abc123" && req.Email == "ada@example.com"
		})).Return(&model.Member{ID: memberID, Email: "ada@example.com"}, nil)

		config := JWTConfig{Secret: secret, Resolver: resolver, Logger: zap.NewNop()}
		rec, member := runMiddleware(t, config, "Bearer "+signToken(t, secret, "auth0|abc123", "ada@example.com"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, member)
		assert.Equal(t, memberID, member.ID)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		config := JWTConfig{Secret: secret, Resolver: new(mockMemberResolver), Logger: zap.NewNop()}
		rec, member := runMiddleware(t, config, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, member)
	})

	t.Run("token signed with the wrong secret is rejected", func(t *testing.T) {
		config := JWTConfig{Secret: secret, Resolver: new(mockMemberResolver), Logger: zap.NewNop()}
		rec, member := runMiddleware(t, config, "Bearer "+signToken(t, "other-secret", "auth0|abc123", "ada@example.com"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, member)
	})

	t.Run("token without subject is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": "ada@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		assert.NoError(t, err)

		config := JWTConfig{Secret: secret, Resolver: new(mockMemberResolver), Logger: zap.NewNop()}
		rec, member := runMiddleware(t, config, "Bearer "+signed)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, member)
	})

	t.Run("skip paths bypass validation", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		config := JWTConfig{Secret: secret, Resolver: new(mockMemberResolver), Logger: zap.NewNop(), SkipPaths: []string{"/health"}}
		handler := JWTMiddleware(config)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	withMember := func(member *model.Member) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/events", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if member != nil {
			ctx := context.WithValue(req.Context(), memberContextKey, member)
			c.SetRequest(req.WithContext(ctx))
		}
		return c, rec
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("admin passes", func(t *testing.T) {
		c, rec := withMember(&model.Member{ID: uuid.New(), Role: model.MemberRoleAdmin})
		assert.NoError(t, RequireAdmin(zap.NewNop())(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain member is forbidden", func(t *testing.T) {
		c, rec := withMember(&model.Member{ID: uuid.New(), Role: model.MemberRoleMember})
		assert.NoError(t, RequireAdmin(zap.NewNop())(next)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated is unauthorized", func(t *testing.T) {
		c, rec := withMember(nil)
		assert.NoError(t, RequireAdmin(zap.NewNop())(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
