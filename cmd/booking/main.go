// Command booking runs the wellness booking API: user accounts, the event
// catalogue and the booking lifecycle.  Confirmed bookings are announced
// to the CRM service over HTTP and to the message broker.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/wellness-booking-platform/internal/admission"
	"github.com/iliyamo/wellness-booking-platform/internal/config"
	"github.com/iliyamo/wellness-booking-platform/internal/database"
	"github.com/iliyamo/wellness-booking-platform/internal/handler"
	"github.com/iliyamo/wellness-booking-platform/internal/notifier"
	"github.com/iliyamo/wellness-booking-platform/internal/queue"
	"github.com/iliyamo/wellness-booking-platform/internal/repository"
	"github.com/iliyamo/wellness-booking-platform/internal/router"
	"github.com/iliyamo/wellness-booking-platform/internal/seed"
	queue_publisher "github.com/iliyamo/wellness-booking-platform/internal/service"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("booking: database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.EnsureBookingSchema(db); err != nil {
		log.Fatalf("booking: schema bootstrap failed: %v", err)
	}
	if err := seed.Booking(db); err != nil {
		log.Fatalf("booking: seeding failed: %v", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)

	checker := admission.NewChecker(events, bookings)
	crm := notifier.New(cfg.CRMURL, cfg.CRMBearerToken)

	rateLimit, rateWin := config.RateLimit()

	deps := router.Deps{
		Auth:      handler.NewAuthHandler(users, tokens, cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays, cfg.BcryptCost),
		Events:    handler.NewEventHandler(events),
		Bookings:  handler.NewBookingHandler(bookings, users, checker, crm, queue_publisher.PublishBookingConfirmed),
		Health:    handler.NewHealthHandler(db, "booking"),
		JWTSecret: cfg.JWTSecret,
		Rdb:       rdb,
		CacheTTL:  config.CacheTTL(),
		RateLimit: rateLimit,
		RateWin:   rateWin,
	}

	// The audit consumer reconnects forever; run it in the background.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking: consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, deps)

	log.Printf("booking: starting API on port %s (%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("booking: server stopped: %v", err)
	}
}
