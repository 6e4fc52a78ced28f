package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unievents/venue-booking-service/config"
	"github.com/unievents/venue-booking-service/internal/handler"
	"github.com/unievents/venue-booking-service/internal/mailer"
	"github.com/unievents/venue-booking-service/internal/middleware"
	"github.com/unievents/venue-booking-service/internal/notifier"
	"github.com/unievents/venue-booking-service/internal/repository"
	"github.com/unievents/venue-booking-service/internal/service"
	"github.com/unievents/venue-booking-service/pkg/database"
	"github.com/unievents/venue-booking-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: emails are queued here and drained by the mailer consumer,
	// so a slow mail API never blocks an approve/reject response.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	var sender mailer.Sender
	if cfg.MailDriver == "api" {
		sender = mailer.NewAPISender(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	} else {
		sender = mailer.LogSender{}
	}
	mailer.NewConsumer(sender).Start(msgs)

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// Services
	n := notifier.New(notificationRepo, auditRepo, publisher)
	bookingSvc := service.NewBookingService(bookingRepo, venueRepo, equipmentRepo, userRepo, n, cfg.Rules)
	venueSvc := service.NewVenueService(venueRepo, bookingRepo, n)
	equipmentSvc := service.NewEquipmentService(equipmentRepo, n)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, venueRepo, equipmentRepo, userRepo, n)

	// Background sweep: auto-reject stale pending, complete ended bookings
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go service.NewSweeper(bookingRepo, bookingSvc, cfg.Rules).Run(sweepCtx)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(middleware.Metrics)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "venue-booking-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.Identity(userRepo))
	admin := api.Group("/admin", middleware.RequireAdmin)

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewVenueHandler(venueSvc, bookingSvc).RegisterRoutes(api, admin)
	handler.NewEquipmentHandler(equipmentSvc).RegisterRoutes(api, admin)
	handler.NewAdminHandler(bookingSvc, auditRepo).RegisterRoutes(admin)
	handler.NewMaintenanceHandler(maintenanceSvc).RegisterRoutes(api, admin)
	handler.NewNotificationHandler(notificationRepo).RegisterRoutes(api)

	log.Printf("Venue Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
