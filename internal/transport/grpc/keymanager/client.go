package keymanagergrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
)

// Client calls a remote key manager service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a key manager gRPC server at target.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("keymanager client: dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Dispatch sends a raw argument bag and returns the command the server decoded.
// Rejections come back as errors matching the server's *runtime.APIError kind.
func (c *Client) Dispatch(ctx context.Context, args *runtime.Args) (keymanager.Command, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, DispatchFullMethod, argsToPB(args), out); err != nil {
		return nil, fromGRPCStatus(err)
	}
	cmd, err := commandFromPB(out)
	if err != nil {
		return nil, fmt.Errorf("keymanager client: decode response: %w", err)
	}
	return cmd, nil
}

// DispatchCommand encodes cmd as invocation arguments and dispatches it.
func (c *Client) DispatchCommand(ctx context.Context, cmd keymanager.Command) (keymanager.Command, error) {
	args, err := keymanager.Args(cmd)
	if err != nil {
		return nil, err
	}
	return c.Dispatch(ctx, args)
}
