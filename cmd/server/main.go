package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/research-tracker/internal/config"
	"github.com/hongminglow/research-tracker/internal/logging"
	"github.com/hongminglow/research-tracker/internal/patentsearch"
	"github.com/hongminglow/research-tracker/internal/server"
	"github.com/hongminglow/research-tracker/internal/storage/memory"
	"github.com/hongminglow/research-tracker/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger.Slog())

	ctx := context.Background()
	if envErr != nil {
		logger.Info(ctx, "no .env file found; relying on existing environment")
	}

	stores, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init database", "error", err)
		os.Exit(1)
	}
	defer closeStores()

	search := patentsearch.NewClient(cfg.PatentSearchURL, cfg.PatentSearchTimeout)
	srv := server.New(cfg, logger, stores, search)

	go func() {
		logger.Info(ctx, "research tracker listening", "addr", srv.Addr())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info(ctx, "shutting down", "signal", sig.String())

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error(ctx, "graceful shutdown error", "error", err)
	}
}

// openStores connects to Postgres, or to the in-memory store when the
// database URL is config.MemoryDatabaseURL.
func openStores(ctx context.Context, cfg config.Config, logger logging.Logger) (server.Stores, func(), error) {
	if cfg.DatabaseURL == config.MemoryDatabaseURL {
		logger.Warn(ctx, "using in-memory storage; data is lost on exit")
		m := memory.NewStore()
		return server.Stores{
			Users:        m.Users(),
			Patents:      m.Patents(),
			Publications: m.Publications(),
			Events:       m.Events(),
			Conferences:  m.Conferences(),
			Stats:        m.Stats(),
		}, func() {}, nil
	}

	pg, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return server.Stores{}, nil, err
	}
	return server.Stores{
		Users:        pg.Users(),
		Patents:      pg.Patents(),
		Publications: pg.Publications(),
		Events:       pg.Events(),
		Conferences:  pg.Conferences(),
		Stats:        pg.Stats(),
	}, pg.Close, nil
}
