package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
	"github.com/i-melnichenko/keys-manager/internal/types"
)

func (c *cli) setKeyWeightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key-weight <account> <weight>",
		Short: "Set the weight of an associated key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := parseAccount(args[0])
			if err != nil {
				return err
			}
			weight, err := parseWeight(args[1])
			if err != nil {
				return err
			}
			return c.send(cmd.Context(), keymanager.SetKeyWeight{Account: account, Weight: weight})
		},
	}
}

func (c *cli) setDeploymentThresholdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-deployment-threshold <weight>",
		Short: "Set the weight required to deploy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := parseWeight(args[0])
			if err != nil {
				return err
			}
			return c.send(cmd.Context(), keymanager.SetDeploymentThreshold{Weight: weight})
		},
	}
}

func (c *cli) setKeyManagementThresholdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key-management-threshold <weight>",
		Short: "Set the weight required to manage keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := parseWeight(args[0])
			if err != nil {
				return err
			}
			return c.send(cmd.Context(), keymanager.SetKeyManagementThreshold{Weight: weight})
		},
	}
}

func (c *cli) setAllCmd() *cobra.Command {
	var (
		deployment string
		management string
		keys       []string
	)
	cmd := &cobra.Command{
		Use:   "set-all --deployment-threshold <w> --key-management-threshold <w> [--key <account>=<weight>]...",
		Short: "Set both thresholds and a batch of key weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dt, err := parseWeight(deployment)
			if err != nil {
				return fmt.Errorf("deployment threshold: %w", err)
			}
			kt, err := parseWeight(management)
			if err != nil {
				return fmt.Errorf("key management threshold: %w", err)
			}
			out := keymanager.SetAll{
				DeploymentThreshold:    dt,
				KeyManagementThreshold: kt,
				Accounts:               make([]types.AccountHash, 0, len(keys)),
				Weights:                make([]types.Weight, 0, len(keys)),
			}
			for _, kv := range keys {
				acc, w, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("key %q: want <account>=<weight>", kv)
				}
				account, err := parseAccount(acc)
				if err != nil {
					return err
				}
				weight, err := parseWeight(w)
				if err != nil {
					return err
				}
				out.Accounts = append(out.Accounts, account)
				out.Weights = append(out.Weights, weight)
			}
			return c.send(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&deployment, "deployment-threshold", "", "deployment threshold weight")
	cmd.Flags().StringVar(&management, "key-management-threshold", "", "key management threshold weight")
	cmd.Flags().StringArrayVar(&keys, "key", nil, "associated key weight as <account>=<weight> (repeatable)")
	_ = cmd.MarkFlagRequired("deployment-threshold")
	_ = cmd.MarkFlagRequired("key-management-threshold")
	return cmd
}

// delegationCmd builds delegate and undelegate, which share their arguments.
func (c *cli) delegationCmd(action string) *cobra.Command {
	short := "Delegate an amount from a delegator to a validator"
	if action == keymanager.ActionUndelegate {
		short = "Undelegate an amount from a validator back to a delegator"
	}
	return &cobra.Command{
		Use:   strings.ReplaceAll(action, "_", "-") + " <delegator-key> <validator-key> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			delegator, err := types.ParsePublicKey(args[0])
			if err != nil {
				return fmt.Errorf("delegator: %w", err)
			}
			validator, err := types.ParsePublicKey(args[1])
			if err != nil {
				return fmt.Errorf("validator: %w", err)
			}
			amount, err := types.NewU512FromString(args[2])
			if err != nil {
				return err
			}
			if action == keymanager.ActionUndelegate {
				return c.send(cmd.Context(), keymanager.Undelegate{Delegator: delegator, Validator: validator, Amount: amount})
			}
			return c.send(cmd.Context(), keymanager.Delegate{Delegator: delegator, Validator: validator, Amount: amount})
		},
	}
}

const rawExample = `  [{"name": "action", "type": "String", "value": "set_deployment_threshold"},
   {"name": "weight", "type": "U8", "value": "2"}]`

func (c *cli) rawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raw <file|->",
		Short: "Send a JSON argument list as-is",
		Long: `Reads a JSON array of {"name", "type", "value"} objects and sends it
unchanged, so malformed or unknown invocations can be exercised.

Example:
` + rawExample,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			var bag runtime.Args
			if err := json.Unmarshal(data, &bag); err != nil {
				return err
			}
			return c.sendArgs(cmd.Context(), &bag)
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// parseAccount accepts an account hash or a tagged public key.
func parseAccount(s string) (types.AccountHash, error) {
	if pk, err := types.ParsePublicKey(s); err == nil {
		return types.AccountHashFromPublicKey(pk), nil
	}
	h, err := types.ParseAccountHash(s)
	if err != nil {
		return types.AccountHash{}, fmt.Errorf("account %q is neither a public key nor an account hash: %w", s, err)
	}
	return h, nil
}

func parseWeight(s string) (types.Weight, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return types.Weight{}, fmt.Errorf("weight %q: %w", s, err)
	}
	return types.NewWeight(n)
}

func printArgs(w io.Writer, args *runtime.Args) error {
	data, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printCommand(w io.Writer, cmd keymanager.Command) {
	_, _ = fmt.Fprintf(w, "action: %s\n", cmd.Action())
	switch c := cmd.(type) {
	case keymanager.SetKeyWeight:
		_, _ = fmt.Fprintf(w, "account: %s\nweight: %s\n", c.Account, c.Weight)
	case keymanager.SetDeploymentThreshold:
		_, _ = fmt.Fprintf(w, "weight: %s\n", c.Weight)
	case keymanager.SetKeyManagementThreshold:
		_, _ = fmt.Fprintf(w, "weight: %s\n", c.Weight)
	case keymanager.SetAll:
		_, _ = fmt.Fprintf(w, "deployment_threshold: %s\nkey_management_threshold: %s\n", c.DeploymentThreshold, c.KeyManagementThreshold)
		for i, acc := range c.Accounts {
			weight := "-"
			if i < len(c.Weights) {
				weight = c.Weights[i].String()
			}
			_, _ = fmt.Fprintf(w, "key: %s %s\n", acc, weight)
		}
		if extra := len(c.Weights) - len(c.Accounts); extra > 0 {
			_, _ = fmt.Fprintf(w, "unpaired weights: %d\n", extra)
		}
	case keymanager.Delegate:
		_, _ = fmt.Fprintf(w, "delegator: %s\nvalidator: %s\namount: %s\n", c.Delegator, c.Validator, c.Amount)
	case keymanager.Undelegate:
		_, _ = fmt.Fprintf(w, "delegator: %s\nvalidator: %s\namount: %s\n", c.Delegator, c.Validator, c.Amount)
	}
}
