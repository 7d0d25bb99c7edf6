package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
	"github.com/i-melnichenko/keys-manager/internal/types"
)

var testTracer = noop.NewTracerProvider().Tracer("test/internal/service")

func thresholdArgs(action string) *runtime.Args {
	return runtime.NewArgs().
		Insert(keymanager.ArgAction, runtime.StringValue(action)).
		Insert(keymanager.ArgWeight, runtime.U8Value(2))
}

func TestKeyManager_Dispatch(t *testing.T) {
	want := keymanager.SetDeploymentThreshold{Weight: types.WeightOf(2)}

	tests := []struct {
		name    string
		args    *runtime.Args
		setup   func(t *testing.T, exec *MockExecutor, metrics *MockMetrics)
		wantErr error
		wantCmd keymanager.Command
	}{
		{
			name: "executes decoded command",
			args: thresholdArgs(keymanager.ActionSetDeploymentThreshold),
			setup: func(t *testing.T, exec *MockExecutor, metrics *MockMetrics) {
				t.Helper()

				metrics.EXPECT().ObserveParseDuration(gomock.Any(), true).Times(1)
				exec.EXPECT().
					Execute(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cmd keymanager.Command) error {
						if !keymanager.Equal(want, cmd) {
							t.Fatalf("executor got %#v, want %#v", cmd, want)
						}
						return nil
					}).
					Times(1)
				metrics.EXPECT().ObserveExecuteDuration(keymanager.ActionSetDeploymentThreshold, gomock.Any(), true).Times(1)
				metrics.EXPECT().IncDispatch(keymanager.ActionSetDeploymentThreshold, ResultOK).Times(1)
			},
			wantCmd: want,
		},
		{
			name: "unknown command never reaches executor",
			args: thresholdArgs("Set_Deployment_Threshold"),
			setup: func(_ *testing.T, _ *MockExecutor, metrics *MockMetrics) {
				metrics.EXPECT().ObserveParseDuration(gomock.Any(), false).Times(1)
				metrics.EXPECT().IncDispatch(actionNone, ResultUnknownCommand).Times(1)
			},
			wantErr: keymanager.ErrUnknownAPICommand,
		},
		{
			name: "missing argument never reaches executor",
			args: runtime.NewArgs().Insert(keymanager.ArgAction, runtime.StringValue(keymanager.ActionSetKeyWeight)),
			setup: func(_ *testing.T, _ *MockExecutor, metrics *MockMetrics) {
				metrics.EXPECT().ObserveParseDuration(gomock.Any(), false).Times(1)
				metrics.EXPECT().IncDispatch(actionNone, ResultMissingArgument).Times(1)
			},
			wantErr: runtime.ErrMissingArgument,
		},
		{
			name: "mistyped argument never reaches executor",
			args: runtime.NewArgs().
				Insert(keymanager.ArgAction, runtime.StringValue(keymanager.ActionSetDeploymentThreshold)).
				Insert(keymanager.ArgWeight, runtime.StringValue("2")),
			setup: func(_ *testing.T, _ *MockExecutor, metrics *MockMetrics) {
				metrics.EXPECT().ObserveParseDuration(gomock.Any(), false).Times(1)
				metrics.EXPECT().IncDispatch(actionNone, ResultInvalidArgument).Times(1)
			},
			wantErr: runtime.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			exec := NewMockExecutor(ctrl)
			metrics := NewMockMetrics(ctrl)
			tt.setup(t, exec, metrics)

			svc := NewKeyManager(exec, slog.Default(), testTracer, metrics)
			cmd, err := svc.Dispatch(context.Background(), tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if cmd != nil {
					t.Fatalf("expected no command, got %#v", cmd)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if !keymanager.Equal(tt.wantCmd, cmd) {
				t.Fatalf("expected %#v, got %#v", tt.wantCmd, cmd)
			}
		})
	}
}

func TestKeyManager_DispatchWrapsExecutorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	execErr := errors.New("insufficient key management weight")
	exec := NewMockExecutor(ctrl)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(execErr).Times(1)

	svc := NewKeyManager(exec, slog.Default(), testTracer, nil)
	cmd, err := svc.Dispatch(context.Background(), thresholdArgs(keymanager.ActionSetKeyManagementThreshold))
	if !errors.Is(err, ErrExecute) {
		t.Fatalf("expected ErrExecute, got %v", err)
	}
	if !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped executor error, got %v", err)
	}
	if cmd != nil {
		t.Fatalf("expected no command, got %#v", cmd)
	}
}

func TestKeyManager_DryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := NewMockLogger(ctrl)
	logger.EXPECT().Debug("command decoded", "action", keymanager.ActionSetKeyWeight, "dry_run", true).Times(1)

	svc := NewKeyManager(nil, logger, nil, nil)
	args := runtime.NewArgs().
		Insert(keymanager.ArgAction, runtime.StringValue(keymanager.ActionSetKeyWeight)).
		Insert(keymanager.ArgAccount, runtime.AccountHashValue(types.AccountHash{1})).
		Insert(keymanager.ArgWeight, runtime.U8Value(1))

	cmd, err := svc.Dispatch(context.Background(), args)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if _, ok := cmd.(keymanager.SetKeyWeight); !ok {
		t.Fatalf("expected SetKeyWeight, got %T", cmd)
	}
}

func TestKeyManager_NilLoggerFallsBackToDefault(t *testing.T) {
	svc := NewKeyManager(nil, nil, nil, nil)
	if svc.logger == nil {
		t.Fatal("expected default logger")
	}

	if _, err := svc.Dispatch(context.Background(), thresholdArgs(keymanager.ActionSetDeploymentThreshold)); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if _, err := svc.Dispatch(context.Background(), runtime.NewArgs()); !errors.Is(err, runtime.ErrMissingArgument) {
		t.Fatalf("expected ErrMissingArgument, got %v", err)
	}
}
