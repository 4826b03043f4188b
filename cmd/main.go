package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/finrep/bookkeeper/internal/book"
	"github.com/finrep/bookkeeper/internal/httpapi"
	"github.com/finrep/bookkeeper/internal/service/account"
	"github.com/finrep/bookkeeper/internal/storage/memory"
	pgstore "github.com/finrep/bookkeeper/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	var store httpapi.Storage
	var closeFn func()

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		store = pg
		logger.Info("storage backend: postgres")
	} else {
		store = memory.New()
		logger.Info("storage backend: memory")
	}

	if dev := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED"))); dev == "1" || dev == "true" || dev == "yes" {
		if err := seedDev(ctx, logger, store); err != nil {
			logger.Error("dev seed failed", "err", err)
		}
	}

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           httpapi.New(store, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bookkeeper service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// seedDev creates a demo administration with the default chart and one party,
// and prints the IDs for easy copy/paste.
func seedDev(ctx context.Context, l *slog.Logger, store httpapi.Storage) error {
	admin, err := store.CreateAdministration(ctx, book.Administration{
		ID:       uuid.New(),
		Name:     "Demo Administration",
		Currency: "EUR",
	})
	if err != nil {
		return err
	}
	accountSvc := account.New(store, store)
	if _, err := accountSvc.SeedDefaultChart(ctx, admin.ID); err != nil {
		return err
	}
	party, err := store.CreateParty(ctx, book.Party{
		ID:               uuid.New(),
		AdministrationID: admin.ID,
		Name:             "Acme Ltd",
	})
	if err != nil {
		return err
	}

	l.Info("DEV seed", "administration_id", admin.ID.String(), "party_id", party.ID.String())
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("administration_id: %s\n", admin.ID.String())
	fmt.Printf("party_id: %s\n", party.ID.String())
	fmt.Println("==================================================")
	return nil
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
