package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/api"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/config"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/database"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/quote"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/repository"
	"github.com/tvandijk/Stock-Portfolio-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	settingsRepo, err := repository.NewSettingsRepository(db, cfg.Security.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create settings repository: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db, settingsRepo)
	transactionService := service.NewTransactionService(
		transactionRepo,
	)
	quoteClient := quote.NewFinanceClient(cfg.Quote.MaxRetries, cfg.Quote.RetryDelay)
	portfolioService := service.NewPortfolioService(
		transactionRepo,
		holdingRepo,
		valuationRepo,
		quoteClient,
		cfg.Quote.FetchWorkers,
	)

	// Create router
	router := api.NewRouter(systemService, transactionService, portfolioService, cfg)

	// Scheduled portfolio sync
	var scheduler *cron.Cron
	if cfg.Sync.Enabled {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sync.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := portfolioService.Sync(ctx)
			if err != nil {
				log.Printf("Scheduled sync failed: %v", err)
				return
			}
			log.Printf("Scheduled sync complete: %d positions, %d failed tickers",
				len(result.Positions), len(result.FailedTickers))
		})
		if err != nil {
			log.Fatalf("Failed to schedule portfolio sync: %v", err)
		}
		scheduler.Start()
		log.Printf("Scheduled portfolio sync: %s", cfg.Sync.Schedule)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		// Wait for any in-flight scheduled sync to finish.
		<-scheduler.Stop().Done()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
