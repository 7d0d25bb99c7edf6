package keymanager

import (
	"fmt"

	"github.com/i-melnichenko/keys-manager/internal/runtime"
)

// Args builds the named arguments a caller sends to request cmd.
// Parse(Args(cmd)) yields a command equal to cmd. Pointer variants are
// encoded as the variant they point to.
func Args(cmd Command) (*runtime.Args, error) {
	cmd = value(cmd)
	if cmd == nil {
		return nil, fmt.Errorf("keymanager: nil command")
	}
	args := runtime.NewArgs().Insert(ArgAction, runtime.StringValue(cmd.Action()))

	switch c := cmd.(type) {
	case SetKeyWeight:
		args.Insert(ArgAccount, runtime.AccountHashValue(c.Account)).
			Insert(ArgWeight, runtime.U8Value(c.Weight.Uint8()))
	case SetDeploymentThreshold:
		args.Insert(ArgWeight, runtime.U8Value(c.Weight.Uint8()))
	case SetKeyManagementThreshold:
		args.Insert(ArgWeight, runtime.U8Value(c.Weight.Uint8()))
	case SetAll:
		weights := make([]uint8, len(c.Weights))
		for i, w := range c.Weights {
			weights[i] = w.Uint8()
		}
		args.Insert(ArgDeploymentThreshold, runtime.U8Value(c.DeploymentThreshold.Uint8())).
			Insert(ArgKeyManagementThreshold, runtime.U8Value(c.KeyManagementThreshold.Uint8())).
			Insert(ArgAccounts, runtime.AccountHashListValue(c.Accounts)).
			Insert(ArgWeights, runtime.U8ListValue(weights))
	case Delegate:
		args.Insert(ArgDelegator, runtime.PublicKeyValue(c.Delegator)).
			Insert(ArgValidator, runtime.PublicKeyValue(c.Validator)).
			Insert(ArgAmount, runtime.U512Value(c.Amount))
	case Undelegate:
		args.Insert(ArgDelegator, runtime.PublicKeyValue(c.Delegator)).
			Insert(ArgValidator, runtime.PublicKeyValue(c.Validator)).
			Insert(ArgAmount, runtime.U512Value(c.Amount))
	default:
		return nil, fmt.Errorf("keymanager: unsupported command %T", cmd)
	}
	return args, nil
}
