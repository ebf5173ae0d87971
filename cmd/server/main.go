package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-room-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-room-reservation/internal/database"   // MySQL connection pool
	"github.com/iliyamo/hotel-room-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-room-reservation/internal/middleware" // redis cache + rate limit middleware
	"github.com/iliyamo/hotel-room-reservation/internal/queue"      // block lifecycle consumer
	"github.com/iliyamo/hotel-room-reservation/internal/repository" // DB repositories
	"github.com/iliyamo/hotel-room-reservation/internal/router"     // Route registration
	"github.com/iliyamo/hotel-room-reservation/internal/service"    // booking + block services
)

func main() {
	// Load .env when present; in containers the variables come from the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	// Repositories
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	blocks := repository.NewBlockRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Services
	bookingSvc := service.NewBookingService(rooms, bookings)
	blockSvc := service.NewBlockService(blocks, rooms, bookings)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	roomH := handler.NewRoomHandler(rooms)
	bookingH := handler.NewBookingHandler(bookingSvc, bookings)
	blockH := handler.NewBlockHandler(blockSvc, blocks)
	availH := handler.NewAvailabilityHandler(blockSvc)

	e := echo.New() // Create Echo instance

	// Global token-bucket rate limiter (no-op middleware when disabled).
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterRooms(e, roomH, cfg.JWTSecret)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterBlocks(e, blockH, cfg.JWTSecret)
	router.RegisterAvailability(e, availH, cfg.JWTSecret,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// Consume block lifecycle events in the background; the consumer
	// reconnects on its own and never takes the API down.
	go func() {
		if err := queue.StartBlockConsumer(); err != nil {
			log.Printf("block consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
