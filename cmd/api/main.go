package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"eventticketing/config"
	_ "eventticketing/docs"
	"eventticketing/internal/adapters/auth"
	"eventticketing/internal/adapters/email"
	"eventticketing/internal/adapters/metrics"
	"eventticketing/internal/adapters/paystack"
	httpdelivery "eventticketing/internal/delivery/http"
	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
	"eventticketing/internal/repository/postgres"
	"eventticketing/internal/services"
	"eventticketing/migrations"
)

const (
	serviceTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	bcryptCost      = 12
)

// @title Event Ticketing API
// @version 1.0
// @description Payment verification, ticket issuance, events, inquiries and sales dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(startupCtx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "eventticketing"),
	)
	paymentMetrics, err := metrics.NewPaymentMetrics(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	var gateway domain.PaymentGateway
	if cfg.Paystack.Configured() {
		gateway = paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, cfg.Paystack.Timeout)
	} else {
		logger.Warn("PAYSTACK_SECRET_KEY not set, payments will not be verified")
	}

	eventRepo := postgres.NewEventRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	inquiryRepo := postgres.NewInquiryRepository(db)
	organizerRepo := postgres.NewOrganizerRepository(db)

	tokens := auth.NewJWT(cfg.JWTSecret)
	authSvc := services.NewAuthService(organizerRepo, auth.NewBcryptHasher(bcryptCost), tokens, cfg.JWTExpiry)
	paymentSvc := services.NewPaymentService(gateway, ticketRepo, eventRepo, emailSvc, paymentMetrics, logger, services.PaymentOptions{
		FailOpen:    cfg.Paystack.FailurePolicy == config.FailOpen,
		Currency:    cfg.Paystack.Currency,
		CallbackURL: cfg.Paystack.CallbackURL,
		Timeout:     cfg.Paystack.Timeout + serviceTimeout,
	})

	if err := seedAdmin(startupCtx, cfg.Admin, authSvc, logger); err != nil {
		return err
	}

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Payment:   controllers.NewPaymentController(logger, paymentSvc),
		Ticket:    controllers.NewTicketController(logger, services.NewTicketService(ticketRepo, serviceTimeout)),
		Event:     controllers.NewEventController(logger, services.NewEventService(eventRepo, serviceTimeout)),
		Inquiry:   controllers.NewInquiryController(logger, services.NewInquiryService(inquiryRepo, serviceTimeout)),
		Auth:      controllers.NewAuthController(logger, authSvc),
		Dashboard: controllers.NewDashboardController(logger, services.NewDashboardService(ticketRepo, eventRepo, serviceTimeout)),
		Health:    controllers.NewHealthController(logger, db),
	}, tokens, registry, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, router)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Paystack.Timeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment, "payment_failure_policy", cfg.Paystack.FailurePolicy)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	if err := paymentSvc.Wait(shutdownCtx); err != nil {
		logger.Warn("confirmation emails still pending at shutdown", "err", err)
	}
	logger.Info("server stopped")
	return nil
}

// seedAdmin creates the organizer named by ADMIN_EMAIL when it does not exist yet.
func seedAdmin(ctx context.Context, admin config.AdminConfig, svc domain.AuthService, logger *slog.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		logger.Info("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping organizer bootstrap")
		return nil
	}
	o, created, err := svc.EnsureOrganizer(ctx, admin.Email, admin.Name, admin.Password)
	if err != nil {
		return fmt.Errorf("bootstrap organizer: %w", err)
	}
	if created {
		logger.Info("organizer created", "email", o.Email)
	}
	return nil
}
