package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/auth"
	"github.com/dabi61/opensky/internal/client/cli"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/iocli"
	"github.com/dabi61/opensky/internal/client/session"
	"github.com/dabi61/opensky/internal/client/storage"
	"github.com/dabi61/opensky/internal/client/storage/boltdb"
	"github.com/dabi61/opensky/internal/client/storage/redisstore"
	"github.com/dabi61/opensky/internal/client/transport"
	"github.com/dabi61/opensky/internal/config"
	"github.com/dabi61/opensky/internal/crypto"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Глобальные флаги, пустые значения не переопределяют env
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "Server URL")
	dbPath := flag.String("db", "", "Path to local session database")
	backend := flag.String("storage", "", "Session storage backend: bolt or redis")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	passwordFile := flag.String("password-file", "", "Path to file containing password")
	password := flag.String("password", "", "Password (not recommended, use env var or file)")
	flag.Usage = func() { cli.PrintUsage(os.Stderr) }

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		return 0
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		return 1
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	overrideString(&cfg.ServerURL, *serverURL)
	overrideString(&cfg.Storage.DBPath, *dbPath)
	overrideString(&cfg.Storage.Backend, *backend)
	overrideString(&cfg.LogLevel, *logLevel)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Создаем контекст, отменяемый по Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backendStorage, closer, err := openStorage(ctx, cfg.Storage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session storage: %v\n", err)
		return 1
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close session storage", "error", err)
		}
	}()

	store := session.NewStore(backendStorage, logger)
	if err := store.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load session: %v\n", err)
		return 1
	}

	bus := events.NewBus()
	defer bus.Close()

	// Клиент без авторизации: login, register, refresh, logout
	plainClient := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.RequestTimeout))

	refresher := transport.NewRefresher(store, plainClient, bus, logger,
		transport.WithAttemptTimeout(cfg.AttemptTimeout))
	authTransport, err := transport.New(transport.Config{
		Base:    http.DefaultTransport,
		APIURL:  cfg.ServerURL,
		Cushion: cfg.RefreshCushion,
	}, store, refresher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure transport: %v\n", err)
		return 1
	}
	authedClient := api.NewClient(cfg.ServerURL,
		api.WithTransport(authTransport),
		api.WithTimeout(cfg.RequestTimeout))

	authService := auth.NewService(plainClient, store, bus, logger)
	app := cli.New(iocli.NewStdio(), authService, authedClient, store, bus, cli.PasswordSources{
		FromFile: *passwordFile,
		FromArgs: *password,
	})

	// Выполняем команду
	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openStorage opens the configured backend and wraps it in the sealing layer
// when a passphrase is set.
func openStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storage.SessionStorage, io.Closer, error) {
	var (
		backend  storage.SessionStorage
		closer   io.Closer
		deviceID = cfg.DeviceID
	)

	switch cfg.Backend {
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		if deviceID == "" {
			host, err := os.Hostname()
			if err != nil {
				_ = rdb.Close()
				return nil, nil, fmt.Errorf("failed to determine device id: %w", err)
			}
			deviceID = host
		}
		rs, err := redisstore.New(rdb, deviceID, cfg.Redis.TTL)
		if err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		backend, closer = rs, rdb
	default:
		// Открываем BoltDB storage
		bs, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if deviceID == "" {
			deviceID, err = bs.DeviceID(ctx)
			if err != nil {
				_ = bs.Close()
				return nil, nil, err
			}
		}
		backend, closer = bs, bs
	}

	if cfg.Passphrase == "" {
		return backend, closer, nil
	}

	key, err := crypto.DeriveSealingKey(cfg.Passphrase, deviceID)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	sealed, err := storage.NewSealed(backend, key)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	logger.Debug("session storage sealed", "backend", cfg.Backend)
	return sealed, closer, nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func printVersion() {
	fmt.Printf("OpenSky Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

