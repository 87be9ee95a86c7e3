package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/dabi61/opensky/internal/config"
	"github.com/dabi61/opensky/internal/server"
	"github.com/dabi61/opensky/internal/server/handlers"
	"github.com/dabi61/opensky/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Hour
)

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", "", "Listen address (overrides OPENSKY_ADDR)")
	dbPath := flag.String("db", "", "Path to SQLite database (overrides OPENSKY_SERVER_DB)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	noBanner := flag.Bool("no-banner", false, "Do not print the startup banner")
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	overrideString(&cfg.Addr, *addr)
	overrideString(&cfg.DBPath, *dbPath)
	overrideString(&cfg.LogLevel, *logLevel)

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if !*noBanner {
		figure.NewFigure("OpenSky", "cybermedium", true).Print()
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	router, stopRateLimit := server.NewRouter(server.Deps{
		Logger: logger,
		Store:  store,
		JWT: handlers.JWTConfig{
			Secret:          []byte(cfg.JWT.Secret),
			Issuer:          cfg.JWT.Issuer,
			AccessTokenTTL:  cfg.JWT.AccessExpiry,
			RefreshTokenTTL: cfg.JWT.RefreshExpiry,
		},
		RateLimit: cfg.RateLimit,
		Version:   Version,
	})
	defer stopRateLimit()

	go server.RunTokenJanitor(ctx, store, janitorInterval, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "version", Version)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func printVersion() {
	fmt.Printf("OpenSky Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
