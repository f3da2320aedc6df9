package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"climaedu/config"
	"climaedu/cron"
	"climaedu/database"
	rosterRepo "climaedu/database/repository/roster"
	sessionRepoPkg "climaedu/database/repository/session"
	templateRepoPkg "climaedu/database/repository/template"
	"climaedu/handlers"
	"climaedu/middleware"
	"climaedu/routes"
	"climaedu/services/scheduling"
	"climaedu/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	templateRepo := templateRepoPkg.NewMongoTemplateRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	courseRoster := rosterRepo.NewMongoRosterRepo()

	if err := templateRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure template indexes: %v", err)
	}
	if err := sessionRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure session indexes: %v", err)
	}

	// services.
	policy, err := scheduling.NewPolicyFromConfig()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid scheduling policy: %v", err)
	}
	schedulingService := &scheduling.DefaultSchedulingService{
		TemplateRepo: templateRepo,
		SessionRepo:  sessionRepo,
		RosterRepo:   courseRoster,
		Policy:       policy,
		Logger:       logger,
	}

	bookingHandler := handlers.NewBookingHandler(schedulingService, logger)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler)

	// Background sweeper for orphaned pending sessions.
	cron.InitSessionSweeper(sessionRepo, logger)

	utils.StartHealthMonitor(utils.GetRosterCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
