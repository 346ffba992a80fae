package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/CIPMABUJA/hr-hub-backend/internal/config"
	"github.com/CIPMABUJA/hr-hub-backend/internal/infrastructure/database"
	"github.com/CIPMABUJA/hr-hub-backend/internal/infrastructure/gateway/paystack"
	httpServer "github.com/CIPMABUJA/hr-hub-backend/internal/infrastructure/http"
	"github.com/CIPMABUJA/hr-hub-backend/internal/messaging"
	"github.com/CIPMABUJA/hr-hub-backend/internal/notification"
	"github.com/CIPMABUJA/hr-hub-backend/internal/usecase"
	"github.com/CIPMABUJA/hr-hub-backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments export the variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := newBus(cfg, zapLogger)
	defer bus.Close()

	gatewayClient := paystack.NewClient(
		cfg.Service.Paystack.SecretKey,
		cfg.Service.Paystack.BaseURL,
		cfg.Service.Paystack.Timeout,
		zapLogger,
	)

	dispatcher := notification.NewDispatcher(notification.EmailConfig{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	}, zapLogger)

	memberService := usecase.NewMemberService(repos.Members, zapLogger)
	membershipService := usecase.NewMembershipService(repos.Memberships, zapLogger)
	paymentService := usecase.NewPaymentService(
		repos.Payments, repos.Members, repos.Tx, gatewayClient, bus,
		cfg.Service.Paystack.CallbackURL, zapLogger,
	)
	applicationService := usecase.NewApplicationService(
		repos.Applications, repos.Members, membershipService, dispatcher, zapLogger,
	)
	eventService := usecase.NewEventService(
		repos.Events, repos.Registrations, repos.Members, repos.Tx,
		paymentService, dispatcher, zapLogger,
	)
	cpdService := usecase.NewCPDService(repos.CPD, repos.Members, zapLogger)

	// Receipts and activation notices are delivered off the verification
	// path.
	consumer := notification.NewConsumer(bus, dispatcher, zapLogger)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			zapLogger.Error("Notification consumer exited", zap.Error(err))
		}
	}()

	if cfg.Reconciler.Enabled {
		reconciler := usecase.NewReconciler(repos.Payments, paymentService, usecase.ReconcilerConfig{
			Interval:  cfg.Reconciler.Interval,
			StaleAge:  cfg.Reconciler.StaleAge,
			BatchSize: cfg.Reconciler.BatchSize,
		}, zapLogger)
		go reconciler.Run(ctx)
	}

	httpSrv := httpServer.NewServer(cfg, zapLogger, httpServer.Services{
		Members:      memberService,
		Memberships:  membershipService,
		Applications: applicationService,
		Payments:     paymentService,
		Events:       eventService,
		CPD:          cpdService,
	})

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}

// newBus connects to redis when configured, otherwise falls back to
// in-process delivery so a single-node deployment needs no broker.
func newBus(cfg *config.Config, zapLogger *zap.Logger) messaging.Bus {
	if cfg.Redis.Addr == "" {
		zapLogger.Info("Redis not configured, using in-process event bus")
		return messaging.NewInProcessBus()
	}

	bus, err := messaging.NewRedisBus(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		zapLogger.Warn("Redis unavailable, falling back to in-process event bus",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err))
		return messaging.NewInProcessBus()
	}

	zapLogger.Info("Connected to redis event bus", zap.String("addr", cfg.Redis.Addr))
	return bus
}
