// Package keymanager turns the untrusted named arguments of a key manager
// invocation into a typed Command.
package keymanager

import "github.com/i-melnichenko/keys-manager/internal/runtime"

// Named argument keys read from the invocation context.
//
// ArgDeploymentThreshold keeps the spelling existing callers send.
const (
	ArgAction                 = "action"
	ArgAccount                = "account"
	ArgWeight                 = "weight"
	ArgDeploymentThreshold    = "deployment_thereshold"
	ArgKeyManagementThreshold = "key_management_threshold"
	ArgAccounts               = "accounts"
	ArgWeights                = "weights"
	ArgDelegator              = "delegator"
	ArgValidator              = "validator"
	ArgAmount                 = "amount"
)

// Action tokens accepted in the "action" argument. Matching is exact.
const (
	ActionSetKeyWeight              = "set_key_weight"
	ActionSetDeploymentThreshold    = "set_deployment_threshold"
	ActionSetKeyManagementThreshold = "set_key_management_threshold"
	ActionSetAll                    = "set_all"
	ActionDelegate                  = "delegate"
	ActionUndelegate                = "undelegate"
)

// Actions lists every recognized action token.
var Actions = []string{
	ActionSetKeyWeight,
	ActionSetDeploymentThreshold,
	ActionSetKeyManagementThreshold,
	ActionSetAll,
	ActionDelegate,
	ActionUndelegate,
}

// ErrUnknownAPICommand rejects an invocation whose action is not recognized.
var ErrUnknownAPICommand = runtime.UserError(1)
