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

	"github.com/NB-Software-IND/WealthGenie-Backend/internal/advisor"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/api"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/cache"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/config"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/database"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/jobs"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/repository"
	"github.com/NB-Software-IND/WealthGenie-Backend/internal/service"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	draftRepo, err := repository.NewDraftRepository(db, cfg.Drafts.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create draft repository: %v", err)
	}

	// Narrative cache: redis when configured, in-memory otherwise
	var narrativeCache cache.Cache
	if cfg.Cache.RedisAddr != "" {
		narrativeCache = cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		log.Printf("Using redis narrative cache at %s", cfg.Cache.RedisAddr)
	} else {
		narrativeCache = cache.NewMemoryCache(cfg.Cache.TTL)
	}

	// Content-generation collaborator
	advisorClient := advisor.NewClient(cfg.Advisor.APIKey, cfg.Advisor.APIURL, cfg.Advisor.Model)
	universe := advisorClient.Universe()
	content := advisor.NewCachedClient(advisorClient, narrativeCache)

	// Create services
	systemService := service.NewSystemService(db)
	draftService := service.NewDraftService(draftRepo)
	cashFlowService := service.NewCashFlowService()
	riskService := service.NewRiskService()
	capacityService := service.NewCapacityService()
	allocationService := service.NewAllocationService()
	overlapService := service.NewOverlapService(universe)
	proposalService := service.NewProposalService(
		draftRepo,
		cashFlowService,
		riskService,
		capacityService,
		allocationService,
		overlapService,
		content,
		universe,
	)

	// Schedule the draft cleanup job
	scheduler := cron.New()
	cleanupJob := jobs.NewDraftCleanupJob(draftRepo, cfg.Drafts.RetentionDays)
	if _, err := scheduler.AddJob(cfg.Drafts.CleanupSchedule, cleanupJob); err != nil {
		log.Fatalf("Failed to schedule draft cleanup: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, draftService, proposalService, cfg)

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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
