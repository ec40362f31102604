package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vr-rental-reservation/internal/config"
	"github.com/iliyamo/vr-rental-reservation/internal/database"
	"github.com/iliyamo/vr-rental-reservation/internal/handler"
	"github.com/iliyamo/vr-rental-reservation/internal/queue"
	"github.com/iliyamo/vr-rental-reservation/internal/repository"
	"github.com/iliyamo/vr-rental-reservation/internal/router"
	queue_publisher "github.com/iliyamo/vr-rental-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap: %v", err)
	}
	cancel()
	log.Println("users and reservations tables ready")

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	rentals := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	rentalHandler := handler.NewRentalHandler(rentals, queue_publisher.PublishRentalEvent)

	// Background consumer appends rental events to logs/rental.log and
	// reconnects on broker failure.
	go func() {
		if err := queue.StartRentalConsumer(); err != nil {
			log.Printf("rental consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, authHandler, rentalHandler, cfg.JWTSecret,
		rdb, config.LoadRateLimitConfig(), config.LoadCacheConfig())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
