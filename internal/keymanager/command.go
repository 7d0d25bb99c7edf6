package keymanager

import (
	"slices"

	"github.com/i-melnichenko/keys-manager/internal/types"
)

// Command is one decoded key manager request. The set of implementations is
// closed to this package; consumers switch over the concrete types.
type Command interface {
	Action() string
	isCommand()
}

// SetKeyWeight sets the weight of an associated key.
type SetKeyWeight struct {
	Account types.AccountHash
	Weight  types.Weight
}

// SetDeploymentThreshold sets the weight needed to deploy.
type SetDeploymentThreshold struct {
	Weight types.Weight
}

// SetKeyManagementThreshold sets the weight needed to manage keys.
type SetKeyManagementThreshold struct {
	Weight types.Weight
}

// SetAll replaces both thresholds and sets every listed key weight.
// Accounts and Weights pair up by position; their lengths are not checked here.
type SetAll struct {
	DeploymentThreshold    types.Weight
	KeyManagementThreshold types.Weight
	Accounts               []types.AccountHash
	Weights                []types.Weight
}

// Delegate bonds Amount from Delegator to Validator.
type Delegate struct {
	Delegator types.PublicKey
	Validator types.PublicKey
	Amount    types.U512
}

// Undelegate unbonds Amount from Validator back to Delegator.
type Undelegate struct {
	Delegator types.PublicKey
	Validator types.PublicKey
	Amount    types.U512
}

func (SetKeyWeight) Action() string              { return ActionSetKeyWeight }
func (SetDeploymentThreshold) Action() string    { return ActionSetDeploymentThreshold }
func (SetKeyManagementThreshold) Action() string { return ActionSetKeyManagementThreshold }
func (SetAll) Action() string                    { return ActionSetAll }
func (Delegate) Action() string                  { return ActionDelegate }
func (Undelegate) Action() string                { return ActionUndelegate }

func (SetKeyWeight) isCommand()              {}
func (SetDeploymentThreshold) isCommand()    {}
func (SetKeyManagementThreshold) isCommand() {}
func (SetAll) isCommand()                    {}
func (Delegate) isCommand()                  {}
func (Undelegate) isCommand()                {}

// value returns the value form of a pointer variant. A nil pointer yields nil.
func value(cmd Command) Command {
	switch c := cmd.(type) {
	case *SetKeyWeight:
		if c != nil {
			return *c
		}
	case *SetDeploymentThreshold:
		if c != nil {
			return *c
		}
	case *SetKeyManagementThreshold:
		if c != nil {
			return *c
		}
	case *SetAll:
		if c != nil {
			return *c
		}
	case *Delegate:
		if c != nil {
			return *c
		}
	case *Undelegate:
		if c != nil {
			return *c
		}
	default:
		return cmd
	}
	return nil
}

// Equal reports whether a and b are the same variant with equal fields.
// A pointer to a variant compares as the variant it points to.
func Equal(a, b Command) bool {
	a, b = value(a), value(b)
	switch x := a.(type) {
	case SetKeyWeight:
		y, ok := b.(SetKeyWeight)
		return ok && x == y
	case SetDeploymentThreshold:
		y, ok := b.(SetDeploymentThreshold)
		return ok && x == y
	case SetKeyManagementThreshold:
		y, ok := b.(SetKeyManagementThreshold)
		return ok && x == y
	case SetAll:
		y, ok := b.(SetAll)
		return ok &&
			x.DeploymentThreshold == y.DeploymentThreshold &&
			x.KeyManagementThreshold == y.KeyManagementThreshold &&
			slices.Equal(x.Accounts, y.Accounts) &&
			slices.Equal(x.Weights, y.Weights)
	case Delegate:
		y, ok := b.(Delegate)
		return ok && x.Delegator.Equal(y.Delegator) && x.Validator.Equal(y.Validator) && x.Amount.Equal(y.Amount)
	case Undelegate:
		y, ok := b.(Undelegate)
		return ok && x.Delegator.Equal(y.Delegator) && x.Validator.Equal(y.Validator) && x.Amount.Equal(y.Amount)
	default:
		return a == nil && b == nil
	}
}
