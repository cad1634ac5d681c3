package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"examplar-api/internal/app"
	"examplar-api/internal/config"
	"examplar-api/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// Serve loads configuration, starts the HTTP server and blocks until a
// shutdown signal arrives.
func Serve(c *cli.Context) error {
	envErr := godotenv.Load(c.String(FlagEnvFile))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	if envErr != nil {
		if errors.Is(envErr, fs.ErrNotExist) {
			l.Info("env file not found, using environment variables")
		} else {
			l.WithError(envErr).Warn("failed to read env file")
		}
	}

	service, err := app.Initialize(cfg, l)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, shutdownSignals...)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- service.Start()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	l.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := service.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	l.Info("server exited gracefully")
	return nil
}
