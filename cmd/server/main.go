package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/traslado/internal"
	"github.com/DukeRupert/traslado/internal/email"
	"github.com/DukeRupert/traslado/internal/handler"
	"github.com/DukeRupert/traslado/internal/metrics"
	"github.com/DukeRupert/traslado/internal/middleware"
	"github.com/DukeRupert/traslado/internal/notify"
	"github.com/DukeRupert/traslado/internal/repository"
	"github.com/DukeRupert/traslado/internal/service"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel, cfg.ServiceName)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(ctx, db, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize repository
	repo := repository.New(db)

	// Initialize email transport
	transport := newTransport(cfg, logger)
	registry := email.DefaultRegistry()
	logger.Info("Email templates loaded", "count", len(registry.Names()), "provider", cfg.EmailProvider)

	// Initialize services
	reservationService := service.NewReservationService(repo, logger)
	assembler := service.NewAssembler(repo, logger)
	deliveryLog := service.NewDeliveryLog(repo, logger)
	emailService := service.NewEmailService(assembler, registry, transport, deliveryLog, logger)
	notifier := notify.NewNotifier(emailService, cfg.AdminEmail, logger)

	// Startup connectivity check is informational only
	verifyCtx, cancelVerify := context.WithTimeout(ctx, cfg.SMTPTimeout)
	if emailService.VerifyConnection(verifyCtx) {
		logger.Info("Email transport verified", "provider", cfg.EmailProvider)
	} else {
		logger.Warn("Email transport not reachable, sends will fail until it is", "provider", cfg.EmailProvider)
	}
	cancelVerify()

	// Initialize middleware
	isSecure := cfg.Env != "development"
	requestLogger := middleware.NewRequestLoggingMiddleware(logger)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(isSecure)
	adminAuth := middleware.NewBasicAuthMiddleware("admin", cfg.AdminUsername, cfg.AdminPassword)
	metricsAuth := middleware.NewBasicAuthMiddleware("metrics", cfg.MetricsUsername, cfg.MetricsPassword)

	if !adminAuth.Enabled() {
		logger.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, admin routes are unprotected")
	}
	if !metricsAuth.Enabled() {
		logger.Warn("METRICS_USERNAME/METRICS_PASSWORD not set, /metrics is unprotected")
	}

	// Initialize handlers
	emailHandler := handler.NewEmailHandler(emailService, notifier, logger)
	adminHandler := handler.NewAdminHandler(reservationService, deliveryLog, notifier, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	// Email routes (public, called by the booking frontend and backend jobs)
	emailHandler.RegisterRoutes(mux)

	// Admin routes
	requireAdmin := middleware.Stack(adminAuth.Handler)
	adminHandler.RegisterRoutes(mux, requireAdmin)

	// Global middleware, outermost first
	stack := middleware.Stack(
		middleware.RequestID,
		requestLogger.Handler,
		metrics.Middleware,
		securityHeaders.Handler,
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newTransport builds the configured mail transport.
func newTransport(cfg *internal.Config, logger *slog.Logger) email.Transport {
	if cfg.EmailProvider == internal.EmailProviderSendGrid {
		return email.NewSendGridTransport(email.SendGridConfig{
			APIKey:   cfg.SendGridAPIKey,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
		}, logger)
	}
	return email.NewSMTPTransport(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	}, cfg.SMTPTimeout, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
