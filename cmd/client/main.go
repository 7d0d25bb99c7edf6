// Package main implements the CLI client for the key manager service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
	kmgrpc "github.com/i-melnichenko/keys-manager/internal/transport/grpc/keymanager"
)

type dialFunc func(addr string) (*kmgrpc.Client, error)

type globalFlags struct {
	addr      string
	timeout   time.Duration
	printArgs bool
}

func main() {
	if err := newRootCmd(os.Stdout, dialInsecure).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func dialInsecure(addr string) (*kmgrpc.Client, error) {
	return kmgrpc.Dial(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
}

// cli carries the state shared by all subcommands.
type cli struct {
	flags globalFlags
	out   io.Writer
	dial  dialFunc
}

func newRootCmd(out io.Writer, dial dialFunc) *cobra.Command {
	c := &cli{out: out, dial: dial}

	root := &cobra.Command{
		Use:   "client",
		Short: "Key manager client",
		Long: `Builds key manager invocations and sends them to a server, which decodes
them and reports the resulting command.

Accounts may be given as account hashes ("account-hash-<hex>", "0x<hex>" or
bare hex) or as tagged public keys ("01<ed25519 hex>", "02<secp256k1 hex>"),
which are converted to their account hash.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.flags.addr, "addr", "localhost:8080", "key manager gRPC address")
	root.PersistentFlags().DurationVar(&c.flags.timeout, "timeout", 5*time.Second, "request timeout")
	root.PersistentFlags().BoolVar(&c.flags.printArgs, "print-args", false, "print the invocation arguments as JSON instead of sending them")

	root.AddCommand(
		c.setKeyWeightCmd(),
		c.setDeploymentThresholdCmd(),
		c.setKeyManagementThresholdCmd(),
		c.setAllCmd(),
		c.delegationCmd(keymanager.ActionDelegate),
		c.delegationCmd(keymanager.ActionUndelegate),
		c.rawCmd(),
	)
	return root
}

// send encodes cmd and either prints the arguments or dispatches them.
func (c *cli) send(ctx context.Context, cmd keymanager.Command) error {
	args, err := keymanager.Args(cmd)
	if err != nil {
		return err
	}
	return c.sendArgs(ctx, args)
}

func (c *cli) sendArgs(ctx context.Context, args *runtime.Args) error {
	if c.flags.printArgs {
		return printArgs(c.out, args)
	}

	client, err := c.dial(c.flags.addr)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx, cancel := context.WithTimeout(ctx, c.flags.timeout)
	defer cancel()

	decoded, err := client.Dispatch(ctx, args)
	if err != nil {
		return err
	}
	printCommand(c.out, decoded)
	return nil
}
