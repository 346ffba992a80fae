package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/CIPMABUJA/hr-hub-backend/internal/adapter/handler/http"
	"github.com/CIPMABUJA/hr-hub-backend/internal/config"
	"github.com/CIPMABUJA/hr-hub-backend/internal/middleware/auth"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
	"github.com/CIPMABUJA/hr-hub-backend/pkg/logger"
)

// Services bundles the usecases the HTTP surface exposes.
type Services struct {
	Members      *usecase.MemberService
	Memberships  *usecase.MembershipService
	Applications *usecase.ApplicationService
	Payments     *usecase.PaymentService
	Events       *usecase.EventService
	CPD          *usecase.CPDService
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	services Services
}

func NewServer(cfg *config.Config, log *zap.Logger, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = logger.NewEchoErrorHandler(log)

	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.PortalURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		services: services,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	paymentHandler := handlers.NewPaymentHandler(s.services.Payments, s.logger)
	membershipHandler := handlers.NewMembershipHandler(s.services.Memberships, s.services.Members, s.logger)
	applicationHandler := handlers.NewApplicationHandler(s.services.Applications, s.logger)
	eventHandler := handlers.NewEventHandler(s.services.Events, s.logger)
	cpdHandler := handlers.NewCPDHandler(s.services.CPD, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret:   s.config.JWT.Secret,
		Issuer:   s.config.JWT.Issuer,
		Resolver: s.services.Members,
		Logger:   s.logger,
		SkipPaths: []string{
			"/health",
			"/api/v1/payments/callback",
		},
	}

	v1 := s.echo.Group("/api/v1")

	// The gateway redirects browsers here after checkout; it carries no
	// bearer token, and verification is idempotent.
	v1.GET("/payments/callback", paymentHandler.Callback)

	// The event catalogue is the branch's public programme.
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.Get)

	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.Initialize)
	payments.GET("/verify/:reference", paymentHandler.Verify)
	payments.GET("", paymentHandler.List)
	payments.GET("/:reference", paymentHandler.Get)

	protected.GET("/members/me", membershipHandler.Profile)
	protected.PUT("/members/me", membershipHandler.UpdateProfile)
	protected.GET("/memberships/me", membershipHandler.Me)

	protected.POST("/applications", applicationHandler.Submit)
	protected.GET("/applications/me", applicationHandler.List)

	protected.POST("/events/:id/register", eventHandler.Register)
	protected.GET("/registrations/me", eventHandler.Registrations)

	protected.GET("/cpd/me", cpdHandler.List)
	protected.GET("/cpd/me/summary", cpdHandler.Summary)

	// Admin surface. The group middleware gates on the stored role;
	// individual usecases re-check it as well.
	admin := protected.Group("/admin", auth.RequireAdmin(s.logger))
	admin.GET("/applications", applicationHandler.AdminListPending)
	admin.POST("/applications/:id/review", applicationHandler.AdminReview)
	admin.POST("/events", eventHandler.AdminCreate)
	admin.POST("/members/:id/cpd", cpdHandler.AdminAward)
	admin.GET("/payments", paymentHandler.AdminList)
}
