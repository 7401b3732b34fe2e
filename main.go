// File: craftlink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"craftlink/config"
	"craftlink/cron"
	"craftlink/database"
	activityRepo "craftlink/database/repository/activity"
	bookingRepo "craftlink/database/repository/booking"
	professionalRepo "craftlink/database/repository/professional"
	"craftlink/handlers"
	"craftlink/middleware"
	"craftlink/routes"
	"craftlink/services/activity"
	"craftlink/services/booking"
	"craftlink/services/notification"
	"craftlink/services/tasks"
	"craftlink/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookRepo := bookingRepo.NewMongoBookingRepo()
	profRepo := professionalRepo.NewMongoProfessionalRepo()
	actRepo := activityRepo.NewMongoActivityRepo()

	// services.
	recorder := &activity.DefaultRecorder{Repo: actRepo}
	availability := &booking.AvailabilityChecker{
		Professionals: profRepo,
		Cache:         utils.GetCacheClient(),
		TTL:           time.Duration(config.AppConfig.AvailabilityCacheTTLSeconds) * time.Second,
	}
	validator := &booking.Validator{
		Clock:       booking.SystemClock(),
		MinLeadTime: time.Duration(config.AppConfig.BookingMinLeadMinutes) * time.Minute,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         bookRepo,
		Availability: availability,
		Conflicts:    &booking.ConflictDetector{Repo: bookRepo},
		Validator:    validator,
		Activity:     recorder,
		Reminders:    tasks.NewAsynqReminderScheduler(),
		Clock:        booking.SystemClock(),
	}

	// Background reminder worker; delivery goes through the notification boundary.
	cron.InitReminderWorker(&notification.LogNotificationService{})

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

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
