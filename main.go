// File: petbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petbook/config"
	"petbook/cron"
	"petbook/database"
	appointmentRepo "petbook/database/repository/appointment"
	userRepoPkg "petbook/database/repository/user"
	"petbook/handlers"
	"petbook/middleware"
	"petbook/routes"
	"petbook/services/booking"
	"petbook/services/notification"
	"petbook/services/storage"
	"petbook/services/user"
	"petbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Reference-image storage: Cloudinary when configured, local disk otherwise.
	var storageSvc storage.StorageService
	uploadsDir := ""
	if config.AppConfig.CloudinaryCloudName != "" {
		cloudSvc, err := storage.NewCloudinaryStorageService(
			config.AppConfig.CloudinaryCloudName,
			config.AppConfig.CloudinaryAPIKey,
			config.AppConfig.CloudinaryAPISecret,
		)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
		storageSvc = cloudSvc
	} else {
		localSvc, err := storage.NewLocalStorageService(config.AppConfig.UploadDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize local storage service: %v", err)
		}
		storageSvc = localSvc
		uploadsDir = localSvc.BaseDir()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	var notifSvc notification.NotificationService
	sgSvc, err := notification.NewSendGridNotificationService(
		config.AppConfig.SendGridAPIKey,
		config.AppConfig.EmailFrom,
		config.AppConfig.EmailFromName,
	)
	if err != nil {
		logger.Sugar().Warnf("main: confirmation emails disabled: %v", err)
		notifSvc = notification.LogNotificationService{}
	} else {
		notifSvc = sgSvc
	}

	// Email delivery runs through the Redis-backed task queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := notification.NewDispatcher(asynqClient)
	cron.InitNotificationWorker(apptRepo, notifSvc)

	bookingService := &booking.DefaultBookingService{
		Repo:       apptRepo,
		Hours:      booking.HoursFromConfig(),
		Cache:      utils.GetCacheClient(),
		Dispatcher: dispatcher,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		UserRepo:     userRepo,
		Auth:         handlers.NewAuthHandler(userService),
		Booking:      handlers.NewBookingHandler(bookingService, storageSvc),
		Appointments: handlers.NewAppointmentHandler(bookingService),
		UploadsDir:   uploadsDir,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
