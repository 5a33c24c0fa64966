package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/carelink/hospital-booking/internal/api"
	"github.com/carelink/hospital-booking/internal/auth"
	"github.com/carelink/hospital-booking/internal/booking"
	"github.com/carelink/hospital-booking/internal/config"
	"github.com/carelink/hospital-booking/internal/db"
	"github.com/carelink/hospital-booking/internal/directory"
	"github.com/carelink/hospital-booking/internal/fixtures"
	"github.com/carelink/hospital-booking/internal/notification"
	"github.com/carelink/hospital-booking/internal/observability/metrics"
	"github.com/carelink/hospital-booking/internal/queue"
	redisclient "github.com/carelink/hospital-booking/internal/redis"
)

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("config load error")
	}

	logger := newLogger(cfg.Env)
	logger.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Bool("demo_mode", cfg.DemoMode).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres is optional; without it the appointment collection lives in
	// memory, seeded from the demo fixtures.
	var pgPool *pgxpool.Pool
	if cfg.PostgresDSN != "" {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err = db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connection error")
		}
		defer pgPool.Close()
		logger.Info().Msg("connected to Postgres")
	}

	// Redis is optional as well; it backs the OTP store and the persistent
	// notification feed when present.
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb, err = redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection error")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error().Err(err).Msg("error closing redis")
			}
		}()
		logger.Info().Msg("connected to Redis")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	var feed notification.Feed
	if rdb != nil {
		feed = notification.NewRedisFeed(rdb)
	} else {
		feed = notification.NewMemoryFeed()
	}

	var otpStore auth.CodeStore
	if rdb != nil {
		otpStore = auth.NewRedisStore(rdb)
	} else {
		otpStore = auth.NewMemoryStore()
	}

	demo := fixtures.Build(booking.DateOf(time.Now()))

	var repo booking.Repository
	if pgPool != nil {
		repo = booking.NewPgRepository(pgPool)
	} else {
		repo = booking.NewMemoryRepository(demo.Appointments...)
	}

	catalog := directory.NewMemoryStore(demo.Hospitals, demo.Doctors, demo.Services)

	bookingSvc := booking.NewService(repo, feed, m, logger)
	advisor := booking.NewAdvisor(repo, booking.RandomWaitEstimator)
	coord := queue.NewCoordinator(feed, m, logger, cfg.AvgConsultMinutes)
	authSvc := auth.NewService(otpStore, cfg.OTPTTL, cfg.OTPResendCooldown, m, logger, cfg.DemoMode)

	if cfg.DemoMode {
		for _, seed := range demo.Queue {
			coord.Add(rootCtx, seed)
		}
	}

	refresher := queue.NewRefresher(coord, cfg.QueueRefreshInterval, logger)
	go refresher.Run(rootCtx)

	router := api.NewRouter(api.RouterConfig{
		Booking:   bookingSvc,
		Advisor:   advisor,
		Queue:     coord,
		Auth:      authSvc,
		Directory: catalog,
		Feed:      feed,
		PgPool:    pgPool,
		Redis:     rdb,
		Logger:    logger,
		Env:       cfg.Env,
		Version:   version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	logger.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
