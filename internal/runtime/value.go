package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/i-melnichenko/keys-manager/internal/types"
)

// CLType names the type a named argument was stored with.
type CLType string

// Argument types understood by the key manager.
const (
	TypeString      CLType = "String"
	TypeU8          CLType = "U8"
	TypeAccountHash CLType = "AccountHash"
	TypePublicKey   CLType = "PublicKey"
	TypeU512        CLType = "U512"
)

const (
	listPrefix = "List<"
	listSuffix = ">"
)

// ListOf returns the list type with element type elem.
func ListOf(elem CLType) CLType {
	return CLType(listPrefix + string(elem) + listSuffix)
}

// Elem returns the element type of a list type.
func (t CLType) Elem() (CLType, bool) {
	s := string(t)
	if !strings.HasPrefix(s, listPrefix) || !strings.HasSuffix(s, listSuffix) {
		return "", false
	}
	return CLType(strings.TrimSuffix(strings.TrimPrefix(s, listPrefix), listSuffix)), true
}

func (t CLType) scalar() bool {
	switch t {
	case TypeString, TypeU8, TypeAccountHash, TypePublicKey, TypeU512:
		return true
	default:
		return false
	}
}

// Value is a typed argument value. A value whose text could not be decoded
// keeps its declared type, its raw text and the decode error; getters report
// it as ErrInvalidArgument only when it is read.
type Value struct {
	typ   CLType
	data  any
	items []Value

	raw    string
	rawErr error
}

// StringValue stores s as a String argument.
func StringValue(s string) Value { return Value{typ: TypeString, data: s} }

// U8Value stores b as a U8 argument.
func U8Value(b uint8) Value { return Value{typ: TypeU8, data: b} }

// AccountHashValue stores h as an AccountHash argument.
func AccountHashValue(h types.AccountHash) Value { return Value{typ: TypeAccountHash, data: h} }

// PublicKeyValue stores pk as a PublicKey argument.
func PublicKeyValue(pk types.PublicKey) Value { return Value{typ: TypePublicKey, data: pk} }

// U512Value stores a as a U512 argument.
func U512Value(a types.U512) Value { return Value{typ: TypeU512, data: a} }

// ListValue builds a homogeneous list. Every item must have type elem.
func ListValue(elem CLType, items ...Value) (Value, error) {
	if !elem.scalar() {
		return Value{}, fmt.Errorf("runtime: unsupported list element type %q", elem)
	}
	for i, it := range items {
		if it.typ != elem {
			return Value{}, fmt.Errorf("runtime: list item %d has type %s, want %s", i, it.typ, elem)
		}
	}
	return Value{typ: ListOf(elem), items: append([]Value(nil), items...)}, nil
}

// AccountHashListValue stores hashes as a List<AccountHash> argument.
func AccountHashListValue(hashes []types.AccountHash) Value {
	items := make([]Value, len(hashes))
	for i, h := range hashes {
		items[i] = AccountHashValue(h)
	}
	return Value{typ: ListOf(TypeAccountHash), items: items}
}

// U8ListValue stores bs as a List<U8> argument.
func U8ListValue(bs []uint8) Value {
	items := make([]Value, len(bs))
	for i, b := range bs {
		items[i] = U8Value(b)
	}
	return Value{typ: ListOf(TypeU8), items: items}
}

// Err returns the decode error of a value kept undecoded, or nil.
func (v Value) Err() error {
	return v.rawErr
}

// Type returns the stored type.
func (v Value) Type() CLType {
	return v.typ
}

// Items returns a copy of the list elements, or nil for scalars.
func (v Value) Items() []Value {
	if v.items == nil {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Text renders a scalar in the form ParseValue accepts. Undecoded values
// return their original text.
func (v Value) Text() string {
	if v.rawErr != nil {
		return v.raw
	}
	switch d := v.data.(type) {
	case string:
		return d
	case uint8:
		return strconv.FormatUint(uint64(d), 10)
	case types.AccountHash:
		return d.Hex()
	case types.PublicKey:
		return d.Hex()
	case types.U512:
		return d.String()
	default:
		return ""
	}
}

// ParseValue decodes the text form of a scalar of type typ.
func ParseValue(typ CLType, text string) (Value, error) {
	switch typ {
	case TypeString:
		return StringValue(text), nil
	case TypeU8:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 8)
		if err != nil {
			return Value{}, fmt.Errorf("runtime: parse U8 %q: %w", text, err)
		}
		return U8Value(uint8(n)), nil
	case TypeAccountHash:
		h, err := types.ParseAccountHash(text)
		if err != nil {
			return Value{}, fmt.Errorf("runtime: parse AccountHash: %w", err)
		}
		return AccountHashValue(h), nil
	case TypePublicKey:
		pk, err := types.ParsePublicKey(text)
		if err != nil {
			return Value{}, fmt.Errorf("runtime: parse PublicKey: %w", err)
		}
		return PublicKeyValue(pk), nil
	case TypeU512:
		a, err := types.NewU512FromString(text)
		if err != nil {
			return Value{}, fmt.Errorf("runtime: parse U512: %w", err)
		}
		return U512Value(a), nil
	default:
		return Value{}, fmt.Errorf("runtime: unsupported scalar type %q", typ)
	}
}

// ParseListValue decodes the text form of every element of a list of elem.
func ParseListValue(elem CLType, texts []string) (Value, error) {
	items := make([]Value, len(texts))
	for i, text := range texts {
		it, err := ParseValue(elem, text)
		if err != nil {
			return Value{}, fmt.Errorf("runtime: list item %d: %w", i, err)
		}
		items[i] = it
	}
	return ListValue(elem, items...)
}

// DecodeValue is ParseValue for transports: text that does not decode is
// kept as an undecoded value instead of failing the whole invocation.
func DecodeValue(typ CLType, text string) Value {
	v, err := ParseValue(typ, text)
	if err != nil {
		return Value{typ: typ, raw: text, rawErr: err}
	}
	return v
}

// DecodeListValue is the list form of DecodeValue. A list with any
// undecodable item is kept undecoded as a whole, with every item's text.
func DecodeListValue(elem CLType, texts []string) Value {
	v, err := ParseListValue(elem, texts)
	if err == nil {
		return v
	}
	items := make([]Value, len(texts))
	for i, text := range texts {
		items[i] = DecodeValue(elem, text)
	}
	return Value{typ: ListOf(elem), items: items, rawErr: err}
}
