// Package service contains application services exposed via transports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Dispatch outcomes reported to Metrics.
const (
	ResultOK              = "ok"
	ResultUnknownCommand  = "unknown_command"
	ResultMissingArgument = "missing_argument"
	ResultInvalidArgument = "invalid_argument"
	ResultExecuteError    = "execute_error"
)

// actionNone labels failures that happen before an action is recognized.
// Raw action strings are caller-controlled and never become metric labels.
const actionNone = "none"

// ErrExecute wraps failures returned by the Executor.
var ErrExecute = errors.New("service: execute command")

// Logger is a minimal structured logger interface, compatible with slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// Executor applies a decoded command to account state.
type Executor interface {
	Execute(ctx context.Context, cmd keymanager.Command) error
}

// Metrics captures service-level metric sinks used by KeyManager.
type Metrics interface {
	IncDispatch(action, result string)
	ObserveParseDuration(d time.Duration, ok bool)
	ObserveExecuteDuration(action string, d time.Duration, ok bool)
}

type noopMetrics struct{}

func (noopMetrics) IncDispatch(string, string)                          {}
func (noopMetrics) ObserveParseDuration(time.Duration, bool)            {}
func (noopMetrics) ObserveExecuteDuration(string, time.Duration, bool) {}

// KeyManager decodes invocations into commands and hands them to an Executor.
// A nil Executor turns Dispatch into a dry run that only decodes.
type KeyManager struct {
	executor Executor
	logger   Logger
	tracer   oteltrace.Tracer
	metrics  Metrics
}

// NewKeyManager creates a KeyManager. A nil logger falls back to
// slog.Default(); nil tracer and metrics fall back to no-ops.
func NewKeyManager(executor Executor, logger Logger, tracer oteltrace.Tracer, metrics Metrics) *KeyManager {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("keys-manager/service")
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &KeyManager{
		executor: executor,
		logger:   logger,
		tracer:   tracer,
		metrics:  metrics,
	}
}

func (s *KeyManager) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}

func spanRecordError(span oteltrace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
}

// Dispatch decodes the invocation in args and, when an Executor is set,
// executes the resulting command. A decoding failure never reaches the
// Executor and no command is returned with a non-nil error.
func (s *KeyManager) Dispatch(ctx context.Context, args runtime.Context) (keymanager.Command, error) {
	ctx, span := s.startSpan(ctx, "keymanager.service.Dispatch")
	defer span.End()

	cmd, err := s.parse(ctx, args)
	if err != nil {
		result := parseResult(err)
		s.metrics.IncDispatch(actionNone, result)
		spanRecordError(span, err)
		s.logger.Debug("invocation rejected", "result", result, "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("keymanager.action", cmd.Action()))

	if s.executor == nil {
		s.metrics.IncDispatch(cmd.Action(), ResultOK)
		s.logger.Debug("command decoded", "action", cmd.Action(), "dry_run", true)
		return cmd, nil
	}

	if err := s.execute(ctx, cmd); err != nil {
		s.metrics.IncDispatch(cmd.Action(), ResultExecuteError)
		spanRecordError(span, err)
		return nil, err
	}
	s.metrics.IncDispatch(cmd.Action(), ResultOK)
	s.logger.Info("command executed", "action", cmd.Action())
	return cmd, nil
}

func (s *KeyManager) parse(ctx context.Context, args runtime.Context) (keymanager.Command, error) {
	_, span := s.startSpan(ctx, "keymanager.Parse")
	defer span.End()
	start := time.Now()

	cmd, err := keymanager.Parse(args)
	s.metrics.ObserveParseDuration(time.Since(start), err == nil)
	if err != nil {
		if code, ok := runtime.ErrorKind(err); ok {
			span.SetAttributes(attribute.Int64("keymanager.error_kind", int64(code)))
		}
		spanRecordError(span, err)
		return nil, err
	}
	return cmd, nil
}

func (s *KeyManager) execute(ctx context.Context, cmd keymanager.Command) error {
	ctx, span := s.startSpan(ctx, "keymanager.service.execute", attribute.String("keymanager.action", cmd.Action()))
	defer span.End()
	start := time.Now()

	err := s.executor.Execute(ctx, cmd)
	s.metrics.ObserveExecuteDuration(cmd.Action(), time.Since(start), err == nil)
	if err != nil {
		err = fmt.Errorf("%w %s: %w", ErrExecute, cmd.Action(), err)
		spanRecordError(span, err)
		return err
	}
	return nil
}

func parseResult(err error) string {
	switch {
	case errors.Is(err, keymanager.ErrUnknownAPICommand):
		return ResultUnknownCommand
	case errors.Is(err, runtime.ErrMissingArgument):
		return ResultMissingArgument
	default:
		return ResultInvalidArgument
	}
}
