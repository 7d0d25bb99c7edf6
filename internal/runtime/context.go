// Package runtime models the host invocation context a contract reads its
// named call arguments from.
package runtime

import (
	"fmt"

	"github.com/i-melnichenko/keys-manager/internal/types"
)

// Context gives read-only access to the named arguments of one invocation.
type Context interface {
	NamedArg(name string) (Value, bool)
}

// Args is an ordered bag of named arguments. It implements Context.
type Args struct {
	names  []string
	values map[string]Value
}

// NewArgs returns an empty argument bag.
func NewArgs() *Args {
	return &Args{values: make(map[string]Value)}
}

// Insert binds v to name. Rebinding a name keeps its original position.
func (a *Args) Insert(name string, v Value) *Args {
	if _, exists := a.values[name]; !exists {
		a.names = append(a.names, name)
	}
	a.values[name] = v
	return a
}

// NamedArg returns the value bound to name.
func (a *Args) NamedArg(name string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.values[name]
	return v, ok
}

// Names returns the argument names in insertion order.
func (a *Args) Names() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.names...)
}

// Len returns the number of bound arguments.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.names)
}

func missingArg(name string) error {
	return fmt.Errorf("runtime: argument %q: %w", name, ErrMissingArgument)
}

func invalidArg(name string, want, got CLType) error {
	return fmt.Errorf("runtime: argument %q has type %s, want %s: %w", name, got, want, ErrInvalidArgument)
}

func lookup(ctx Context, name string, want CLType) (Value, error) {
	v, ok := ctx.NamedArg(name)
	if !ok {
		return Value{}, missingArg(name)
	}
	if v.typ != want {
		return Value{}, invalidArg(name, want, v.typ)
	}
	if v.rawErr != nil {
		return Value{}, fmt.Errorf("runtime: argument %q: %v: %w", name, v.rawErr, ErrInvalidArgument)
	}
	return v, nil
}

func getScalar[T any](ctx Context, name string, want CLType) (T, error) {
	var zero T
	v, err := lookup(ctx, name, want)
	if err != nil {
		return zero, err
	}
	out, ok := v.data.(T)
	if !ok {
		return zero, invalidArg(name, want, v.typ)
	}
	return out, nil
}

func getList[T any](ctx Context, name string, elem CLType) ([]T, error) {
	v, err := lookup(ctx, name, ListOf(elem))
	if err != nil {
		return nil, err
	}
	out := make([]T, len(v.items))
	for i, it := range v.items {
		x, ok := it.data.(T)
		if !ok {
			return nil, invalidArg(fmt.Sprintf("%s[%d]", name, i), elem, it.typ)
		}
		out[i] = x
	}
	return out, nil
}

// GetString reads a String argument.
func GetString(ctx Context, name string) (string, error) {
	return getScalar[string](ctx, name, TypeString)
}

// GetU8 reads a U8 argument.
func GetU8(ctx Context, name string) (uint8, error) {
	return getScalar[uint8](ctx, name, TypeU8)
}

// GetAccountHash reads an AccountHash argument.
func GetAccountHash(ctx Context, name string) (types.AccountHash, error) {
	return getScalar[types.AccountHash](ctx, name, TypeAccountHash)
}

// GetPublicKey reads a PublicKey argument.
func GetPublicKey(ctx Context, name string) (types.PublicKey, error) {
	return getScalar[types.PublicKey](ctx, name, TypePublicKey)
}

// GetU512 reads a U512 argument.
func GetU512(ctx Context, name string) (types.U512, error) {
	return getScalar[types.U512](ctx, name, TypeU512)
}

// GetAccountHashList reads a List<AccountHash> argument, preserving order.
func GetAccountHashList(ctx Context, name string) ([]types.AccountHash, error) {
	return getList[types.AccountHash](ctx, name, TypeAccountHash)
}

// GetU8List reads a List<U8> argument, preserving order.
func GetU8List(ctx Context, name string) ([]uint8, error) {
	return getList[uint8](ctx, name, TypeU8)
}
