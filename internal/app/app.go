// Package app wires the key manager service, its transport and the
// observability endpoints together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/i-melnichenko/keys-manager/internal/service"
	kmgrpc "github.com/i-melnichenko/keys-manager/internal/transport/grpc/keymanager"
)

// Logger is the logging interface required by App.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// App serves the key manager over gRPC.
// All dependencies are injected; App does not create them.
type App struct {
	config     Config
	logger     Logger
	keyManager *service.KeyManager
	rpcMetrics kmgrpc.Metrics
}

// New validates dependencies and constructs a runnable application.
func New(cfg Config, logger Logger, km *service.KeyManager, rpcMetrics kmgrpc.Metrics) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, fmt.Errorf("app: nil logger")
	}
	if km == nil {
		return nil, fmt.Errorf("app: nil key manager service")
	}
	if rpcMetrics == nil {
		return nil, fmt.Errorf("app: nil rpc metrics")
	}
	return &App{
		config:     cfg,
		logger:     logger,
		keyManager: km,
		rpcMetrics: rpcMetrics,
	}, nil
}

// Run starts the gRPC server and optional HTTP endpoints and blocks until
// ctx is canceled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	shutdownTracing, err := a.initTracing(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			a.logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", a.config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", a.config.GRPCAddr, err)
	}
	defer func() { _ = lis.Close() }()

	a.logger.Info(
		"keys manager started",
		"instance_id", a.config.InstanceID,
		"grpc_addr", a.config.GRPCAddr,
		"dry_run", a.config.DryRun,
	)

	return a.serve(ctx, lis)
}

// serve registers gRPC services, starts HTTP side servers, and blocks until
// ctx is canceled or a fatal error occurs.
func (a *App) serve(ctx context.Context, lis net.Listener) error {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(kmgrpc.UnaryServerMetricsInterceptor(a.rpcMetrics)),
	)
	kmgrpc.RegisterKeysManagerServiceServer(server, kmgrpc.NewServer(a.keyManager))
	reflection.Register(server)

	errCh := make(chan error, 3)

	metricsSrv, metricsLis, err := a.metricsServer()
	if err != nil {
		return err
	}
	pprofSrv, pprofLis, err := a.pprofServer()
	if err != nil {
		if metricsLis != nil {
			_ = metricsLis.Close()
		}
		return err
	}
	defer shutdownHTTPServer(metricsSrv, a.logger, "metrics server")
	defer shutdownHTTPServer(pprofSrv, a.logger, "pprof server")

	startHTTP := func(srv *http.Server, l net.Listener, name string) {
		if srv == nil {
			return
		}
		a.logger.Info(name+" listening", "addr", l.Addr().String())
		go func() {
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}
	startHTTP(metricsSrv, metricsLis, "metrics server")
	startHTTP(pprofSrv, pprofLis, "pprof server")

	go func() {
		if err := server.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		server.GracefulStop()
		return nil
	case err := <-errCh:
		server.Stop()
		return err
	}
}
