package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/observability/metrics"
	"github.com/i-melnichenko/keys-manager/internal/service"
	kmgrpc "github.com/i-melnichenko/keys-manager/internal/transport/grpc/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/types"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	prom, err := metrics.NewPrometheus(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewPrometheus: %v", err)
	}
	a, err := New(cfg, logger, service.NewKeyManager(nil, logger, nil, prom), prom)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNew_RejectsMissingDependencies(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	km := service.NewKeyManager(nil, logger, nil, nil)
	prom, err := metrics.NewPrometheus(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewPrometheus: %v", err)
	}

	if _, err := New(DefaultConfig(), nil, km, prom); err == nil {
		t.Fatal("expected error for nil logger")
	}
	if _, err := New(DefaultConfig(), logger, nil, prom); err == nil {
		t.Fatal("expected error for nil key manager")
	}
	if _, err := New(DefaultConfig(), logger, km, nil); err == nil {
		t.Fatal("expected error for nil rpc metrics")
	}
	bad := DefaultConfig()
	bad.GRPCAddr = ""
	if _, err := New(bad, logger, km, prom); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestServe_DispatchesAndStopsOnCancel(t *testing.T) {
	a := newTestApp(t, DefaultConfig())
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, lis) }()

	client, err := kmgrpc.Dial(
		"passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer func() { _ = client.Close() }()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()
	want := keymanager.SetKeyManagementThreshold{Weight: types.WeightOf(9)}
	got, err := client.DispatchCommand(callCtx, want)
	if err != nil {
		t.Fatalf("DispatchCommand: %v", err)
	}
	if !keymanager.Equal(got, want) {
		t.Fatalf("decoded %#v, want %#v", got, want)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestMetricsServer_ExposesRuntimeCollectors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsAddr = "127.0.0.1:0"
	a := newTestApp(t, cfg)

	srv, lis, err := a.metricsServer()
	if err != nil {
		t.Fatalf("metricsServer: %v", err)
	}
	go func() { _ = srv.Serve(lis) }()
	defer shutdownHTTPServer(srv, a.logger, "metrics server")

	resp, err := http.Get("http://" + lis.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Fatal("expected go runtime metrics in /metrics output")
	}
}

func TestSideServers_DisabledWithoutAddr(t *testing.T) {
	a := newTestApp(t, DefaultConfig())

	if srv, lis, err := a.metricsServer(); srv != nil || lis != nil || err != nil {
		t.Fatalf("metricsServer = %v, %v, %v; want all nil", srv, lis, err)
	}
	if srv, lis, err := a.pprofServer(); srv != nil || lis != nil || err != nil {
		t.Fatalf("pprofServer = %v, %v, %v; want all nil", srv, lis, err)
	}
}
