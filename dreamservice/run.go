// Package dreamservice boots the dream journal HTTP service.
package dreamservice

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/somnologia/somnologia/internal/api"
	"github.com/somnologia/somnologia/internal/config"
	"github.com/somnologia/somnologia/internal/health"
	"github.com/somnologia/somnologia/internal/interpreter"
	"github.com/somnologia/somnologia/internal/logger"
	"github.com/somnologia/somnologia/internal/store"
	"github.com/somnologia/somnologia/internal/store/postgres"
	"github.com/somnologia/somnologia/internal/store/sqlite"
)

// Run starts the dream service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("dream-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("interpreter", cfg.Interpreter).
		Int("http_port", cfg.HTTPPort).
		Msg("Dream service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := newStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}
	provider := newInterpreter(cfg)

	startHealthCheckers(ctx, log, st)

	router := api.NewRouter(st, provider, cfg.DashboardRecent, log)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	case "postgres":
		return postgres.New(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

func newInterpreter(cfg *config.Config) interpreter.Interpreter {
	if cfg.Interpreter == "remote" {
		return interpreter.NewRemote(cfg.InterpreterURL, cfg.InterpreterTimeout)
	}
	return interpreter.NewArtemidorus()
}

func startHealthCheckers(ctx context.Context, log zerolog.Logger, st store.Store) {
	pinger, ok := st.(health.HealthPinger)
	if !ok {
		return
	}
	storeCheck := health.NewPingChecker(log, "store", pinger)
	svc := health.NewServiceHealthChecker(log, storeCheck)
	go storeCheck.Start(ctx, 30*time.Second)
	go svc.Start(ctx, 30*time.Second)
}
