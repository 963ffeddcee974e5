package depcontainer

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Proto reads the fields of a protocol buffer message by their proto names
// (for example "type_name", not "TypeName"). Scalars are returned as Go
// values, enums by their value name, repeated fields as []any, maps as
// map[string]any and message fields as the message itself. Unset message
// fields read as nil.
type Proto struct {
	m proto.Message
}

func NewProto(m proto.Message) Proto {
	return Proto{m: m}
}

func (p Proto) Get(attribute string) (any, bool) {
	if p.m == nil {
		return nil, false
	}
	msg := p.m.ProtoReflect()
	if !msg.IsValid() {
		return nil, false
	}
	fd := msg.Descriptor().Fields().ByName(protoreflect.Name(attribute))
	if fd == nil {
		fd = msg.Descriptor().Fields().ByJSONName(attribute)
	}
	if fd == nil {
		return nil, false
	}
	if fd.Message() != nil && !fd.IsList() && !fd.IsMap() && !msg.Has(fd) {
		return nil, true
	}
	return protoValue(fd, msg.Get(fd)), true
}

func protoValue(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsList():
		l := v.List()
		out := make([]any, l.Len())
		for i := 0; i < l.Len(); i++ {
			out[i] = protoScalar(fd, l.Get(i))
		}
		return out
	case fd.IsMap():
		out := map[string]any{}
		v.Map().Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			out[k.String()] = protoScalar(fd.MapValue(), mv)
			return true
		})
		return out
	}
	return protoScalar(fd, v)
}

func protoScalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			return string(ev.Name())
		}
		return int32(v.Enum())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return v.Message().Interface()
	}
	return v.Interface()
}

// NewStructData converts a protobuf Struct to plain keyed data. Numbers
// become float64, as in structpb.
func NewStructData(s *structpb.Struct) Data {
	if s == nil {
		return Data{}
	}
	return Data(s.AsMap())
}
