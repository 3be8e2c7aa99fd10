// File: guildroster/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"guildroster/config"
	"guildroster/cron"
	"guildroster/database"
	rosterRepoPkg "guildroster/database/repository/roster"
	teamRepoPkg "guildroster/database/repository/team"
	"guildroster/handlers"
	"guildroster/middleware"
	"guildroster/routes"
	"guildroster/services/notification"
	rosterSvc "guildroster/services/roster"
	"guildroster/services/schedule"
	teamSvc "guildroster/services/team"
	"guildroster/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	teamRepo := teamRepoPkg.NewMongoTeamRepo()
	rosterRepo := rosterRepoPkg.NewMongoRosterRepo()

	// services.
	anchor := schedule.ParseAnchor(config.AppConfig.WeekAnchor)

	notificationService := notification.NewDefaultNotificationService("", logger)

	scheduleService := &schedule.DefaultScheduleService{
		Repo:     teamRepo,
		Notifier: notificationService,
		Logger:   logger,
		Anchor:   anchor,
		Cap:      config.AppConfig.WeeklyCommitmentCap,
		CapScope: config.AppConfig.CommitmentCapScope,
	}
	teamService := &teamSvc.DefaultTeamService{
		Repo:       teamRepo,
		RosterRepo: rosterRepo,
		Logger:     logger,
		Anchor:     anchor,
	}
	rosterService := &rosterSvc.DefaultRosterService{
		Repo:   rosterRepo,
		Logger: logger,
		Anchor: anchor,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Schedule: &handlers.ScheduleHandler{Service: scheduleService},
		Team:     &handlers.TeamHandler{Service: teamService},
		Roster:   &handlers.RosterHandler{Service: rosterService},
		Export:   &handlers.ExportHandler{Teams: teamService, Roster: rosterService},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background week-window rollover.
	cron.InitRolloverWorker(scheduleService)

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
