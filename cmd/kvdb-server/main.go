// Package main provides the entry point for kvdb-server.
//
// kvdb-server is an in-memory key/value store with per-entry TTL
// expiration, exposed over a plain HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hugcis/kvdb-go/internal/core/service"
	"github.com/hugcis/kvdb-go/internal/infra/buildinfo"
	"github.com/hugcis/kvdb-go/internal/infra/confloader"
	"github.com/hugcis/kvdb-go/internal/infra/shutdown"
	"github.com/hugcis/kvdb-go/internal/server/config"
	"github.com/hugcis/kvdb-go/internal/server/httpserver"
	"github.com/hugcis/kvdb-go/internal/storage/memory"
	"github.com/hugcis/kvdb-go/internal/telemetry/logger"
	"github.com/hugcis/kvdb-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kvdb-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, slogLogger, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting kvdb-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	// Storage and service wiring
	store := memory.New()
	kvService := service.NewKVService(store, slogLogger)

	var metrics *metric.Registry
	if cfg.Metrics.Enabled {
		metrics = metric.NewRegistry()
		metrics.RegisterKeyCount(func() float64 {
			return float64(store.Len())
		})
	}

	routerCfg := httpserver.DefaultRouterConfig()
	routerCfg.KVService = kvService
	routerCfg.Logger = slogLogger
	routerCfg.Metrics = metrics
	routerCfg.RateLimit = cfg.Limits.RateLimit
	routerCfg.EnableMetrics = cfg.Metrics.Enabled
	router := httpserver.NewRouter(routerCfg)

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	// Live reload of the log level on config file changes
	var watcher *confloader.Watcher
	if *configFile != "" {
		watcher, err = startConfigWatcher(*configFile, slogLogger)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
			watcher = nil
		}
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	if watcher != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("stopping config watcher")
			return watcher.Stop()
		})
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger. It returns both the
// logger interface and the underlying slog.Logger for components that
// take slog directly.
func initLogger(cfg *config.ServerConfig) (logger.Logger, *slog.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.SetDefault(log)
	slogLogger := logger.Slog()
	slog.SetDefault(slogLogger)

	return log, slogLogger, nil
}

// startConfigWatcher reloads the log level when the config file changes.
// Address and limit changes still require a restart.
func startConfigWatcher(configFile string, slogLogger *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(slogLogger))
	if err != nil {
		return nil, err
	}

	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		cfg, err := loadConfig(configFile)
		if err != nil {
			slogLogger.Warn("config reload failed", "path", path, "error", err)
			return
		}

		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			slogLogger.Info("log level changed", "level", cfg.Log.Level)
		}
	})

	watcher.StartAsync()
	return watcher, nil
}
