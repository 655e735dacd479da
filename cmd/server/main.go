package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lmfraga/restaurant-table-reservation/internal/booking"
	"github.com/lmfraga/restaurant-table-reservation/internal/config"
	"github.com/lmfraga/restaurant-table-reservation/internal/database"
	"github.com/lmfraga/restaurant-table-reservation/internal/handler"
	"github.com/lmfraga/restaurant-table-reservation/internal/middleware"
	"github.com/lmfraga/restaurant-table-reservation/internal/queue"
	"github.com/lmfraga/restaurant-table-reservation/internal/repository"
	"github.com/lmfraga/restaurant-table-reservation/internal/router"
	queue_publisher "github.com/lmfraga/restaurant-table-reservation/internal/service"
	"github.com/lmfraga/restaurant-table-reservation/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	clientRepo := repository.NewClientRepo(db)
	restaurantRepo := repository.NewRestaurantRepo(db)
	environmentRepo := repository.NewEnvironmentRepo(db)
	tableRepo := repository.NewTableRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	adminRepo := repository.NewAdminRepo(db)

	seedAdmin(ctx, cfg, adminRepo)

	engine := booking.NewService(clientRepo, environmentRepo, tableRepo, reservationRepo, queue_publisher.NewPublisher())

	authHandler := handler.NewAuthHandler(cfg, adminRepo)
	publicHandler := &handler.PublicHandler{
		RestaurantRepo:  restaurantRepo,
		EnvironmentRepo: environmentRepo,
		TableRepo:       tableRepo,
		Engine:          engine,
	}
	bookingHandler := handler.NewBookingHandler(engine, clientRepo, reservationRepo)
	adminHandler := handler.NewAdminHandler(clientRepo, restaurantRepo, environmentRepo, tableRepo, reservationRepo, engine)

	e := echo.New()

	// Redis backs the response cache and the rate limiter.  A nil client
	// disables both and the API keeps serving from the database.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicHandler, browseCache)
	router.RegisterBooking(e, bookingHandler)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Consume confirmed-booking events in the background; the consumer
	// reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and the email is not registered yet.
func seedAdmin(ctx context.Context, cfg config.Config, admins *repository.AdminRepo) {
	if cfg.AdminEmail == "" || cfg.AdminPass == "" {
		return
	}
	if _, err := admins.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	}
	hash, err := utils.HashPassword(cfg.AdminPass, cfg.BcryptCost)
	if err != nil {
		log.Printf("seed admin: hash failed: %v", err)
		return
	}
	if _, err := admins.Create(ctx, cfg.AdminEmail, hash); err != nil {
		log.Printf("seed admin: create failed: %v", err)
		return
	}
	log.Printf("seed admin: created %s", cfg.AdminEmail)
}
