// Command crm runs the CRM/facilitator API: it ingests booking
// notifications from the booking service and lets facilitators review
// their bookings and manage their events.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/wellness-booking-platform/internal/config"
	crmhandler "github.com/iliyamo/wellness-booking-platform/internal/crm/handler"
	crmrepo "github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
	crmrouter "github.com/iliyamo/wellness-booking-platform/internal/crm/router"
	"github.com/iliyamo/wellness-booking-platform/internal/database"
	"github.com/iliyamo/wellness-booking-platform/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	cfg := config.LoadCRM()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("crm: database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.EnsureCRMSchema(db); err != nil {
		log.Fatalf("crm: schema bootstrap failed: %v", err)
	}
	if err := seed.CRM(db, cfg.BcryptCost); err != nil {
		log.Fatalf("crm: seeding failed: %v", err)
	}

	notifications := crmrepo.NewNotificationRepo(db)
	events := crmrepo.NewCRMEventRepo(db)
	facilitators := crmrepo.NewCRMFacilitatorRepo(db)

	deps := crmrouter.Deps{
		Notify:       crmhandler.NewNotifyHandler(notifications),
		Facilitators: crmhandler.NewFacilitatorHandler(notifications, events),
		Auth:         crmhandler.NewAuthHandler(facilitators),
		DB:           db,
		BearerToken:  cfg.BearerToken,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	crmrouter.Register(e, deps)

	log.Printf("crm: starting API on port %s (%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("crm: server stopped: %v", err)
	}
}
