package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jujulabs/juju-dashboard/internal/config"
	"github.com/jujulabs/juju-dashboard/internal/db"
	"github.com/jujulabs/juju-dashboard/internal/httpapi"
	"github.com/jujulabs/juju-dashboard/internal/httpapi/handlers"
	"github.com/jujulabs/juju-dashboard/internal/logger"
	"github.com/jujulabs/juju-dashboard/internal/metrics"
	"github.com/jujulabs/juju-dashboard/internal/store/redisstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.Register()

	gdb, err := db.Connect(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	if cfg.DB.Driver == "sqlite" {
		if err := db.Migrate(gdb); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	}

	// The view cache is best-effort; run without it if redis is down.
	var cache handlers.ViewCache
	rds, err := redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		logger.Warn("redis unavailable, view cache disabled", zap.Error(err))
	} else {
		cache = rds
		defer rds.Close()
	}

	router := httpapi.NewRouter(gdb, *cfg, cache)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
