package keymanagergrpc

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/i-melnichenko/keys-manager/internal/keymanager"
	"github.com/i-melnichenko/keys-manager/internal/runtime"
)

// Each named argument travels as a Struct field holding
// {"type": "<CLType>", "value": "<text>"} or, for lists,
// {"type": "List<T>", "value": ["<text>", ...]}.
const (
	fieldType  = "type"
	fieldValue = "value"
)

func argsToPB(args *runtime.Args) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, args.Len())}
	for _, name := range args.Names() {
		v, _ := args.NamedArg(name)

		var value *structpb.Value
		if _, isList := v.Type().Elem(); isList {
			items := v.Items()
			texts := make([]*structpb.Value, len(items))
			for i, it := range items {
				texts[i] = structpb.NewStringValue(it.Text())
			}
			value = structpb.NewListValue(&structpb.ListValue{Values: texts})
		} else {
			value = structpb.NewStringValue(v.Text())
		}

		out.Fields[name] = structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				fieldType:  structpb.NewStringValue(string(v.Type())),
				fieldValue: value,
			},
		})
	}
	return out
}

// argsFromPB decodes a request. Names are inserted in sorted order since
// Struct fields are unordered. Only the {type, value} shape is checked here;
// a value that does not decode is kept undecoded and fails when it is read.
func argsFromPB(pb *structpb.Struct) (*runtime.Args, error) {
	args := runtime.NewArgs()
	if pb == nil {
		return args, nil
	}

	names := make([]string, 0, len(pb.Fields))
	for name := range pb.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v, err := argFromPB(pb.Fields[name])
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		args.Insert(name, v)
	}
	return args, nil
}

func argFromPB(pb *structpb.Value) (runtime.Value, error) {
	obj := pb.GetStructValue()
	if obj == nil {
		return runtime.Value{}, fmt.Errorf("expected object with %q and %q", fieldType, fieldValue)
	}
	typ := runtime.CLType(obj.Fields[fieldType].GetStringValue())
	if typ == "" {
		return runtime.Value{}, fmt.Errorf("missing %q", fieldType)
	}
	raw, ok := obj.Fields[fieldValue]
	if !ok {
		return runtime.Value{}, fmt.Errorf("missing %q", fieldValue)
	}

	if elem, isList := typ.Elem(); isList {
		list := raw.GetListValue()
		if list == nil {
			return runtime.Value{}, fmt.Errorf("%s value must be a list", typ)
		}
		texts := make([]string, len(list.Values))
		for i, it := range list.Values {
			s, ok := it.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return runtime.Value{}, fmt.Errorf("%s item %d must be a string", typ, i)
			}
			texts[i] = s.StringValue
		}
		return runtime.DecodeListValue(elem, texts), nil
	}

	s, ok := raw.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return runtime.Value{}, fmt.Errorf("%s value must be a string", typ)
	}
	return runtime.DecodeValue(typ, s.StringValue), nil
}

// commandToPB encodes cmd in the request argument form, so a response can be
// decoded with the same parser the server used.
func commandToPB(cmd keymanager.Command) (*structpb.Struct, error) {
	args, err := keymanager.Args(cmd)
	if err != nil {
		return nil, err
	}
	return argsToPB(args), nil
}

func commandFromPB(pb *structpb.Struct) (keymanager.Command, error) {
	args, err := argsFromPB(pb)
	if err != nil {
		return nil, err
	}
	return keymanager.Parse(args)
}
