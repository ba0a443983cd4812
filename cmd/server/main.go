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

	httpapi "bikeshop-rental-backend/internal/api/http"
	"bikeshop-rental-backend/internal/config"
	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/logger"
	"bikeshop-rental-backend/internal/repository/postgres"
	"bikeshop-rental-backend/internal/security"
	"bikeshop-rental-backend/internal/service"

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
	logger.Info("Starting Bike Shop Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.BikeRepository,
		store.PricingRepository,
		store.ContractRepository,
		store.AccessoryRepository,
		store.CustomerRepository,
		store.EventRepository,
		emailSvc,
		cfg.Rental.DepositFactor,
		domain.Season(cfg.Rental.DefaultSeason),
	)
	contractSvc := service.NewContractService(
		store.ContractRepository,
		store.RentalRepository,
		store.CustomerRepository,
		rentalSvc,
		cfg.Rental.MaxDiscount,
	)
	pricingSvc := service.NewPricingService(store.PricingRepository)
	catalogSvc := service.NewCatalogService(store.BikeRepository, store.AccessoryRepository, store.RentalRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.RentalRepository)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Rental:   httpapi.NewRentalHandler(rentalSvc),
		Contract: httpapi.NewContractHandler(contractSvc),
		Bike:     httpapi.NewBikeHandler(catalogSvc),
		Pricing:  httpapi.NewPricingHandler(pricingSvc),
		Customer: httpapi.NewCustomerHandler(customerSvc),
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
