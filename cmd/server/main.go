package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "voltrent-backend/internal/api/http"
	"voltrent-backend/internal/config"
	"voltrent-backend/internal/events"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/notifier"
	"voltrent-backend/internal/push"
	"voltrent-backend/internal/realtime"
	"voltrent-backend/internal/repository/postgres"
	"voltrent-backend/internal/security"
	"voltrent-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting VoltRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Event Bus
	bus := events.NewBus(256)
	go bus.Run()

	// Initialize Realtime Hub
	hub := realtime.NewHub()

	// Initialize Push Sender. FCM is optional; without credentials the
	// websocket and email legs still run.
	var pushSender push.Sender
	if cfg.FCM.CredentialsFile != "" {
		pushSender, err = push.NewFCMSender(context.Background(), cfg.FCM.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM sender", "error", err)
			log.Fatalf("Failed to initialize FCM sender: %v", err)
		}
		logger.Info("FCM push sender initialized")
	} else {
		logger.Warn("FCM credentials not configured, mobile push disabled")
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Subscribe the notification fan-out before any event can be published
	bus.Subscribe(notifier.New(
		store.NotificationRepository,
		store.DeviceTokenRepository,
		store.UserRepository,
		store.VehicleRepository,
		hub,
		pushSender,
		emailSvc,
	))

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.VehicleRepository, bus)
	tripSvc := service.NewTripService(store.TripRepository, store.BookingRepository)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.BookingRepository, cfg.Payment.PlatformFeeRate)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository, store.DeviceTokenRepository)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.BookingRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Bookings:      bookingSvc,
		Trips:         tripSvc,
		Payments:      paymentSvc,
		Vehicles:      vehicleSvc,
		Notifications: noteSvc,
		Reviews:       reviewSvc,
	}, tokenManager, hub)

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	bus.Close()
	logger.Info("Server stopped. Goodbye!")
}
