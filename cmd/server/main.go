package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ktvilla/villa-booking/internal/booking"
	"github.com/ktvilla/villa-booking/internal/config"
	"github.com/ktvilla/villa-booking/internal/database"
	"github.com/ktvilla/villa-booking/internal/handler"
	"github.com/ktvilla/villa-booking/internal/middleware"
	"github.com/ktvilla/villa-booking/internal/notify"
	"github.com/ktvilla/villa-booking/internal/queue"
	"github.com/ktvilla/villa-booking/internal/repository"
	"github.com/ktvilla/villa-booking/internal/router"
	"github.com/ktvilla/villa-booking/pkg/logger"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	log := logger.New(os.Getenv("LOG_LEVEL"))
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()
	if err := database.Migrate(db, "migrations"); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}

	// Redis powers rate limiting and the public response cache.  A nil
	// client disables both; the API itself keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable; rate limiting and response cache disabled")
	}

	bookings := repository.NewBookingRepo(db)
	members := repository.NewMemberRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	items := repository.NewItemRepo(db)

	notifier := notify.NewQueueNotifier(log)
	svc := booking.NewService(db, bookings, members, users,
		booking.ShortCode{}, &booking.PacketAssigner{Items: items}, notifier, log)
	svc.AdminEmail = cfg.AdminEmail
	svc.SiteURL = cfg.SiteURL
	svc.StrictCapacity = cfg.StrictCapacity

	// Drains booking.notifications and delivers the messages.  Runs its
	// own reconnect loop for the life of the process.
	go func() {
		if err := queue.StartNotificationConsumer(log); err != nil {
			log.WithError(err).Error("notification consumer stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterBooking(e, handler.NewBookingHandler(svc, bookings, members), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(bookings), cfg.JWTSecret, config.LoadCacheConfig(), rdb)
	router.RegisterAdmin(e, handler.NewAdminHandler(svc, bookings, users), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
