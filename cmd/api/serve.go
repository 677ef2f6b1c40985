package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-calendar/internal/audit"
	"github.com/BruksfildServices01/booking-calendar/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-calendar/internal/db"
	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/infra/remote"
	infraRepo "github.com/BruksfildServices01/booking-calendar/internal/infra/repository"
	"github.com/BruksfildServices01/booking-calendar/internal/logging"
	"github.com/BruksfildServices01/booking-calendar/internal/relay"
	"github.com/BruksfildServices01/booking-calendar/internal/routes"
	"github.com/BruksfildServices01/booking-calendar/internal/submit"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ======================================================
	// BACKEND
	// ======================================================
	var (
		repo domain.Repository
		db   *gorm.DB
		sink audit.Sink
	)

	switch cfg.Backend {
	case config.BackendPostgres:
		db, err = dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = dbpkg.Close(db) }()

		repo = infraRepo.NewBookingGormRepository(db)
		sink = audit.New(db)
	default:
		api := remote.NewClient(cfg.BookingAPIURL, cfg.BookingAPIToken, cfg.BookingAPITimeout)
		repo = remote.NewRepository(api)
		sink = audit.NewZapSink(log)
	}

	// ======================================================
	// SUBMIT GUARD
	// ======================================================
	var guard submit.Guard = submit.NewLocalGuard()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()

		guard = submit.NewRedisGuard(rdb, cfg.SubmitLockTTL, "", log)
	}

	dispatcher := audit.NewDispatcher(sink, log)
	defer dispatcher.Close()

	hub := relay.NewHub(log)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Infra{
		Repo:  repo,
		Guard: guard,
		Hub:   hub,
		Audit: dispatcher,
		Log:   log,
		DB:    db,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("backend", cfg.Backend),
			zap.Bool("redis_guard", cfg.RedisURL != ""),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
