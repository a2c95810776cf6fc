package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "ispdesk-backend/internal/api/http"
	"ispdesk-backend/internal/config"
	"ispdesk-backend/internal/logger"
	fsrepo "ispdesk-backend/internal/repository/firestore"
	"ispdesk-backend/internal/security"
	"ispdesk-backend/internal/service"
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
	logger.Info("Starting ISP Desk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firestore configuration", "project_id", cfg.Firebase.ProjectID)

	// Initialize Firestore
	ctx := context.Background()
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase app", "error", err)
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer client.Close()
	logger.Info("Firestore connection established")

	// Initialize Repositories
	store := fsrepo.NewStore(client)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)

	// Initialize Services
	authSvc := service.NewAuthService(tokenManager, cfg.Admin.Email, cfg.Admin.PasswordHash)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.CustomerRepository,
		store.ProviderRepository,
		store.NotificationRepository,
		emailSvc,
		cfg.Billing.DefaultCommissionPercent,
		cfg.Billing.DefaultProviderTag,
	)
	rateSvc := service.NewRateService(store.ProviderRepository, cfg.Billing.DefaultCommissionPercent)
	complaintSvc := service.NewComplaintService(
		store.ComplaintRepository,
		store.CustomerRepository,
		store.NotificationRepository,
		emailSvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Customer:     httpapi.NewCustomerHandler(customerSvc),
		Payment:      httpapi.NewPaymentHandler(paymentSvc),
		Rate:         httpapi.NewRateHandler(rateSvc),
		Complaint:    httpapi.NewComplaintHandler(complaintSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}

	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
