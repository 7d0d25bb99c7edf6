// Package main implements the key manager server process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	apppkg "github.com/i-melnichenko/keys-manager/internal/app"
	"github.com/i-melnichenko/keys-manager/internal/observability/metrics"
	"github.com/i-melnichenko/keys-manager/internal/service"
)

// errNoExecutor is returned when execution is requested but no executor is linked in.
var errNoExecutor = errors.New("no command executor is linked into this binary; set KM_DRY_RUN=true")

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "keys-manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := apppkg.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	slog.SetDefault(newLogger(cfg.LogLevel))
	logger := slog.Default().With("instance_id", cfg.InstanceID)

	if !cfg.DryRun {
		return errNoExecutor
	}

	prom, err := metrics.NewPrometheus(nil)
	if err != nil {
		return err
	}

	// The global tracer provider is swapped by App.Run when tracing is enabled;
	// otel.Tracer delegates to whichever provider is current.
	km := service.NewKeyManager(nil, logger, otel.Tracer("keys-manager/service"), prom)

	app, err := apppkg.New(cfg, logger, km, prom)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
