package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unreachable; rate limiting and response cache disabled")
	}

	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	guests := repository.NewGuestRepo(db)
	promos := repository.NewPromoRepo(db)
	staff := repository.NewStaffRepo(db)
	tokens := repository.NewTokenRepo(db)
	notifications := repository.NewNotificationRepo(db)
	shifts := repository.NewShiftRepo(db)
	staffLogs := repository.NewStaffLogRepo(db)
	settings := repository.NewSettingsRepo(db)

	h := router.Handlers{
		Health:        handler.NewHealthHandler(db),
		Auth:          handler.NewAuthHandler(cfg, staff, tokens, staffLogs),
		Availability:  handler.NewAvailabilityHandler(rooms),
		Bookings:      handler.NewBookingHandler(bookings, rooms, guests, promos, staffLogs),
		Rooms:         handler.NewRoomHandler(rooms, staffLogs),
		Guests:        handler.NewGuestHandler(guests),
		Promos:        handler.NewPromoHandler(promos),
		Notifications: handler.NewNotificationHandler(notifications),
		Shifts:        handler.NewShiftHandler(shifts),
		StaffLogs:     handler.NewStaffLogHandler(staffLogs),
		Settings:      handler.NewSettingsHandler(settings),
		Staff:         handler.NewStaffHandler(staff, tokens, staffLogs),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Rate limiting and response caching mount inside the route groups so
	// they run after the auth middleware resolves the staff identity.
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.Register(e, h, cfg.JWTSecret, limit, cache)

	// Lifecycle events become staff notifications; the consumer reconnects
	// on its own and never brings the API down.
	go queue.StartBookingConsumer(notifications)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
