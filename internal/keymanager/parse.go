package keymanager

import (
	"fmt"

	"github.com/i-melnichenko/keys-manager/internal/runtime"
	"github.com/i-melnichenko/keys-manager/internal/types"
)

//go:generate mockgen -destination=mocks_test.go -package=keymanager github.com/i-melnichenko/keys-manager/internal/runtime Context

// Parse reads the action and its arguments from ctx and builds the matching
// Command. Arguments are read in a fixed order and the first missing or
// mistyped one fails the call, so a partially built Command is never
// returned. An unrecognized action yields ErrUnknownAPICommand.
func Parse(ctx runtime.Context) (Command, error) {
	action, err := runtime.GetString(ctx, ArgAction)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionSetKeyWeight:
		account, err := runtime.GetAccountHash(ctx, ArgAccount)
		if err != nil {
			return nil, err
		}
		weight, err := getWeight(ctx, ArgWeight)
		if err != nil {
			return nil, err
		}
		return SetKeyWeight{Account: account, Weight: weight}, nil

	case ActionSetDeploymentThreshold:
		weight, err := getWeight(ctx, ArgWeight)
		if err != nil {
			return nil, err
		}
		return SetDeploymentThreshold{Weight: weight}, nil

	case ActionSetKeyManagementThreshold:
		weight, err := getWeight(ctx, ArgWeight)
		if err != nil {
			return nil, err
		}
		return SetKeyManagementThreshold{Weight: weight}, nil

	case ActionSetAll:
		return parseSetAll(ctx)

	case ActionDelegate:
		delegator, validator, amount, err := getDelegationArgs(ctx)
		if err != nil {
			return nil, err
		}
		return Delegate{Delegator: delegator, Validator: validator, Amount: amount}, nil

	case ActionUndelegate:
		delegator, validator, amount, err := getDelegationArgs(ctx)
		if err != nil {
			return nil, err
		}
		return Undelegate{Delegator: delegator, Validator: validator, Amount: amount}, nil

	default:
		return nil, fmt.Errorf("keymanager: action %q: %w", action, ErrUnknownAPICommand)
	}
}

func parseSetAll(ctx runtime.Context) (Command, error) {
	deployment, err := getWeight(ctx, ArgDeploymentThreshold)
	if err != nil {
		return nil, err
	}
	keyManagement, err := getWeight(ctx, ArgKeyManagementThreshold)
	if err != nil {
		return nil, err
	}
	accounts, err := runtime.GetAccountHashList(ctx, ArgAccounts)
	if err != nil {
		return nil, err
	}
	raw, err := runtime.GetU8List(ctx, ArgWeights)
	if err != nil {
		return nil, err
	}
	weights := make([]types.Weight, len(raw))
	for i, b := range raw {
		weights[i] = types.WeightOf(b)
	}
	return SetAll{
		DeploymentThreshold:    deployment,
		KeyManagementThreshold: keyManagement,
		Accounts:               accounts,
		Weights:                weights,
	}, nil
}

func getWeight(ctx runtime.Context, name string) (types.Weight, error) {
	b, err := runtime.GetU8(ctx, name)
	if err != nil {
		return types.Weight{}, err
	}
	return types.WeightOf(b), nil
}

func getDelegationArgs(ctx runtime.Context) (delegator, validator types.PublicKey, amount types.U512, err error) {
	if delegator, err = runtime.GetPublicKey(ctx, ArgDelegator); err != nil {
		return types.PublicKey{}, types.PublicKey{}, types.U512{}, err
	}
	if validator, err = runtime.GetPublicKey(ctx, ArgValidator); err != nil {
		return types.PublicKey{}, types.PublicKey{}, types.U512{}, err
	}
	if amount, err = runtime.GetU512(ctx, ArgAmount); err != nil {
		return types.PublicKey{}, types.PublicKey{}, types.U512{}, err
	}
	return delegator, validator, amount, nil
}
