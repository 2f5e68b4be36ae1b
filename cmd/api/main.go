package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-funding-service/config"
	"wallet-funding-service/internal/adapter/gateway/cheetah"
	"wallet-funding-service/internal/adapter/gateway/paystack"
	httpHandler "wallet-funding-service/internal/adapter/http/handler"
	pgStorage "wallet-funding-service/internal/adapter/storage/postgres"
	redisStorage "wallet-funding-service/internal/adapter/storage/redis"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/internal/service"
	"wallet-funding-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Funding Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	customerRepo := pgStorage.NewCustomerRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	orderRepo := pgStorage.NewAirtimeOrderRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	receiptCache := redisStorage.NewReceiptCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize provider clients
	paystackClient := paystack.New(cfg.Paystack, log)
	cheetahClient := cheetah.New(cfg.Cheetah, log)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	allocator := service.NewCodeAllocator(customerRepo, orderRepo)

	// Initialize business services
	walletSvc := service.NewWalletService(walletRepo, transactor, log)
	fundingSvc := service.NewFundingService(paystackClient, walletSvc, receiptCache, log)
	authSvc := service.NewAuthService(customerRepo, walletSvc, hashSvc, tokenSvc, allocator, log)
	airtimeSvc := service.NewAirtimeService(cheetahClient, orderRepo, allocator, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		FundingSvc:     fundingSvc,
		WalletSvc:      walletSvc,
		AirtimeSvc:     airtimeSvc,
		CustomerRepo:   customerRepo,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
