package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type jsonArg struct {
	Name  string          `json:"name"`
	Type  CLType          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the bag as an ordered list of
// {"name", "type", "value"} objects. List values encode as string arrays.
func (a *Args) MarshalJSON() ([]byte, error) {
	out := make([]jsonArg, 0, a.Len())
	for _, name := range a.Names() {
		v := a.values[name]
		var (
			raw []byte
			err error
		)
		if _, isList := v.typ.Elem(); isList {
			texts := make([]string, len(v.items))
			for i, it := range v.items {
				texts[i] = it.Text()
			}
			raw, err = json.Marshal(texts)
		} else {
			raw, err = json.Marshal(v.Text())
		}
		if err != nil {
			return nil, err
		}
		out = append(out, jsonArg{Name: name, Type: v.typ, Value: raw})
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form produced by MarshalJSON. Only the JSON shape
// is checked; values are decoded with DecodeValue.
func (a *Args) UnmarshalJSON(data []byte) error {
	var in []jsonArg
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return fmt.Errorf("runtime: decode args: %w", err)
	}

	decoded := NewArgs()
	for _, arg := range in {
		if arg.Name == "" {
			return fmt.Errorf("runtime: decode args: empty argument name")
		}
		if arg.Type == "" {
			return fmt.Errorf("runtime: decode argument %q: empty type", arg.Name)
		}
		v, err := decodeJSONValue(arg)
		if err != nil {
			return fmt.Errorf("runtime: decode argument %q: %w", arg.Name, err)
		}
		decoded.Insert(arg.Name, v)
	}
	*a = *decoded
	return nil
}

func decodeJSONValue(arg jsonArg) (Value, error) {
	if elem, isList := arg.Type.Elem(); isList {
		var texts []string
		if err := json.Unmarshal(arg.Value, &texts); err != nil {
			return Value{}, err
		}
		return DecodeListValue(elem, texts), nil
	}
	var text string
	if err := json.Unmarshal(arg.Value, &text); err != nil {
		return Value{}, err
	}
	return DecodeValue(arg.Type, text), nil
}
