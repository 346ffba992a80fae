package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/domain/model"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
)

// MemberResolver maps an authenticated subject to the local member
// record, provisioning one on first contact.
type MemberResolver interface {
	GetOrCreateFromSubject(ctx context.Context, req *usecase.ProvisionMemberRequest) (*model.Member, error)
}

// contextKey is used for storing the member in context
type contextKey string

const memberContextKey contextKey = "authenticated_member"

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Issuer    string
	Resolver  MemberResolver
	Logger    *zap.Logger
	SkipPaths []string
}

// JWTMiddleware validates bearer tokens from the identity provider and
// resolves the local member record. Role never comes from the token; it
// is read from the members table on every request that needs it.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			parseOptions := []jwt.ParserOption{}
			if config.Issuer != "" {
				parseOptions = append(parseOptions, jwt.WithIssuer(config.Issuer))
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			}, parseOptions...)

			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				config.Logger.Warn("Invalid JWT claims",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_CLAIMS",
				})
			}

			subject, _ := claims["sub"].(string)
			email, _ := claims["email"].(string)
			if subject == "" || email == "" {
				config.Logger.Warn("Token missing subject or email",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Token missing required claims",
					"code":  "INVALID_CLAIMS",
				})
			}

			firstName, _ := claims["given_name"].(string)
			lastName, _ := claims["family_name"].(string)

			member, err := config.Resolver.GetOrCreateFromSubject(c.Request().Context(), &usecase.ProvisionMemberRequest{
				SubjectID: subject,
				Email:     email,
				FirstName: firstName,
				LastName:  lastName,
			})
			if err != nil {
				config.Logger.Error("Failed to resolve member for subject",
					zap.String("subject", subject),
					zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "Failed to resolve member",
					"code":  "MEMBER_RESOLUTION_FAILED",
				})
			}

			ctx := context.WithValue(c.Request().Context(), memberContextKey, member)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("member_id", member.ID.String())

			config.Logger.Debug("Member authenticated",
				zap.String("member_id", member.ID.String()),
				zap.String("path", path))

			return next(c)
		}
	}
}

// GetMemberFromContext extracts the authenticated member from the request context
func GetMemberFromContext(c echo.Context) (*model.Member, error) {
	member, ok := c.Request().Context().Value(memberContextKey).(*model.Member)
	if !ok || member == nil {
		return nil, fmt.Errorf("no authenticated member found in context")
	}
	return member, nil
}

// RequireAuth returns the authenticated member or writes a 401 response.
func RequireAuth(c echo.Context) (*model.Member, error) {
	member, err := GetMemberFromContext(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authentication required",
			"code":  "AUTH_REQUIRED",
		})
	}
	return member, nil
}

// RequireAdmin gates a route group to members whose stored role is admin.
// The check runs on the freshly resolved record, so a revoked admin loses
// access on their next request.
func RequireAdmin(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			member, err := GetMemberFromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authentication required",
					"code":  "AUTH_REQUIRED",
				})
			}
			if !member.IsAdmin() {
				logger.Warn("Admin route denied",
					zap.String("member_id", member.ID.String()),
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "Administrator access required",
					"code":  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
