package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bscolinos/finance-demov2/config"
	"github.com/bscolinos/finance-demov2/internal/advisor"
	"github.com/bscolinos/finance-demov2/internal/cache"
	"github.com/bscolinos/finance-demov2/internal/database"
	"github.com/bscolinos/finance-demov2/internal/handlers"
	"github.com/bscolinos/finance-demov2/internal/llm"
	"github.com/bscolinos/finance-demov2/internal/marketdata"
	"github.com/bscolinos/finance-demov2/internal/middleware"
	"github.com/bscolinos/finance-demov2/internal/navigation"
	"github.com/bscolinos/finance-demov2/internal/news"
	"github.com/bscolinos/finance-demov2/internal/repository"
	"github.com/bscolinos/finance-demov2/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize external clients
	llmClient := llm.NewAnthropicClient(cfg.AnthropicKey, cfg.LLMModel, cfg.LLMTimeout)
	avClient := marketdata.NewClient(cfg.AVKey)
	newsClient := news.NewClient(cfg.NewsKey)

	// Initialize caches
	memCache := cache.NewMemoryCache(5 * time.Minute)

	// Initialize repositories
	portfolioRepo := repository.NewPortfolioRepository(db.Pool)
	activityRepo := repository.NewActivityRepository(db.Pool)

	// Initialize services
	resolver := navigation.NewResolver(llmClient)
	optimizer := advisor.NewOptimizer(llmClient)
	portfolioSvc := services.NewPortfolioService(portfolioRepo)
	activityLog := services.NewActivityLog(activityRepo)
	planSvc := services.NewPlanService(resolver, optimizer, portfolioSvc, activityLog)
	performanceSvc := services.NewPerformanceService(portfolioSvc, avClient, memCache)

	// Initialize handlers
	planHandler := handlers.NewPlanHandler(planSvc)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioSvc, performanceSvc, activityLog)
	insightsHandler := handlers.NewInsightsHandler(optimizer, portfolioSvc, newsClient, activityLog)
	newsHandler := handlers.NewNewsHandler(newsClient, avClient)
	activityHandler := handlers.NewActivityHandler(activityLog)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.ExtractUser())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Plan routes
	router.POST("/plan", planHandler.Create)
	router.POST("/rebalance", planHandler.Rebalance)
	router.GET("/pages", planHandler.Pages)

	// Portfolio routes
	router.POST("/positions", portfolioHandler.AddPosition)
	router.GET("/users/:user_id/positions", portfolioHandler.ListPositions)
	router.GET("/users/:user_id/performance", portfolioHandler.Performance)
	router.GET("/users/:user_id/insights", insightsHandler.Get)
	router.GET("/users/:user_id/activities", activityHandler.List)

	// Market routes
	router.GET("/news", newsHandler.List)
	router.GET("/market/summary", newsHandler.MarketSummary)
	router.GET("/market/:symbol/history", newsHandler.History)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
