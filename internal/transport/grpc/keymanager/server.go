package keymanagergrpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
)

// Handler is the subset of *service.KeyManager required by the gRPC server.
// *service.KeyManager satisfies this interface.
type Handler interface {
	Dispatch(ctx context.Context, args runtime.Context) (keymanager.Command, error)
}

// Metrics captures transport-level metric sinks.
type Metrics interface {
	ObserveRPCDuration(method, code string, d time.Duration)
	ObserveRequestArgs(method string, n int)
}

// Server implements KeysManagerServiceServer by delegating to a key manager service.
type Server struct {
	handler Handler
}

// NewServer creates a key manager gRPC server adapter for the provided handler.
func NewServer(handler Handler) *Server {
	return &Server{handler: handler}
}

// Dispatch handles a Dispatch RPC.
func (s *Server) Dispatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	args, err := argsFromPB(req)
	if err != nil {
		return nil, toGRPCStatus(fmt.Errorf("decode request: %v: %w", err, runtime.ErrInvalidArgument))
	}
	cmd, err := s.handler.Dispatch(ctx, args)
	if err != nil {
		return nil, toGRPCStatus(err)
	}
	resp, err := commandToPB(cmd)
	if err != nil {
		return nil, toGRPCStatus(err)
	}
	return resp, nil
}

// UnaryServerMetricsInterceptor records handling time and request size.
func UnaryServerMetricsInterceptor(m Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if pb, ok := req.(*structpb.Struct); ok {
			m.ObserveRequestArgs(info.FullMethod, len(pb.GetFields()))
		}
		start := time.Now()
		resp, err := handler(ctx, req)
		m.ObserveRPCDuration(info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}
