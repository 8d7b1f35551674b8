package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reservation-scheduler/internal/audit"
	"github.com/BruksfildServices01/reservation-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/reservation-scheduler/internal/db"
	"github.com/BruksfildServices01/reservation-scheduler/internal/featureflag"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/reservation-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/reservation-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/reservation-scheduler/internal/logger"
	"github.com/BruksfildServices01/reservation-scheduler/internal/metrics"
	"github.com/BruksfildServices01/reservation-scheduler/internal/routes"
	ucReservation "github.com/BruksfildServices01/reservation-scheduler/internal/usecase/reservation"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	db, err := dbpkg.NewDB(cfg.Database, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			zl.Warn("database close failed", zap.Error(err))
		}
	}()

	// ======================================================
	// OPTIONAL CLIENTS
	// ======================================================
	var redis *cache.Redis
	if cfg.Redis.Enabled {
		redis, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = redis.Close() }()
		zl.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var images *storage.ImageStore
	if cfg.Storage.Bucket != "" {
		images, err = storage.NewS3ImageStore(cfg.Storage)
		if err != nil {
			return err
		}
	} else {
		zl.Info("object storage not configured, image uploads disabled")
	}

	var mail ucReservation.Mailer
	if cfg.Mail.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		zl.Info("smtp not configured, reminders are logged only")
		mail = mailer.NewLogMailer(zl)
	}

	// ======================================================
	// SHARED SERVICES
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	var flagCache featureflag.Cache
	if redis != nil {
		flagCache = redis
	}
	flags := featureflag.NewService(infraRepo.NewFeatureFlagGormRepository(db), flagCache, cfg.Features, zl)
	if err := flags.EnsureDefaults(ctx, cfg.Tenant.ID); err != nil {
		return err
	}

	events := audit.NewDispatcher(audit.New(db), zl, 256)
	defer events.Close()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      zl,
		Events:   events,
		Flags:    flags,
		Mailer:   mail,
		Redis:    redis,
		Images:   images,
		Metrics:  m,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.Env),
			zap.String("tenant_id", cfg.Tenant.ID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
