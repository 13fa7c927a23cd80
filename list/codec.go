package list

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/v2/bson"
	"gopkg.in/yaml.v3"

	"github.com/functils/functils/errors"
)

var (
	_ json.Marshaler        = (*List[int])(nil)
	_ json.Unmarshaler      = (*List[int])(nil)
	_ bson.ValueMarshaler   = (*List[int])(nil)
	_ bson.ValueUnmarshaler = (*List[int])(nil)
	_ yaml.Marshaler        = (*List[int])(nil)
	_ yaml.Unmarshaler      = (*List[int])(nil)
)

// MarshalJSON encodes the list as a JSON array, front element first.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(l.Slice())

	return data, errors.Wrap(err, "marshal list")
}

// UnmarshalJSON replaces the contents of l with the elements of a JSON array.
// null decodes to an empty list.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	var vals []T

	err := json.Unmarshal(data, &vals)
	if err != nil {
		return errors.Wrap(err, "unmarshal list")
	}

	return l.reset(vals)
}

// MarshalBSONValue encodes the list as a BSON array.
func (l *List[T]) MarshalBSONValue() (byte, []byte, error) {
	vals := l.Slice()

	typ, data, err := bson.MarshalValue(vals)
	if err != nil {
		return 0, nil, errors.Wrap(err, "marshal list")
	}

	return byte(typ), data, nil
}

// UnmarshalBSONValue replaces the contents of l with the elements of a BSON array.
func (l *List[T]) UnmarshalBSONValue(typ byte, data []byte) error {
	switch bson.Type(typ) {
	case bson.TypeArray:
	case bson.TypeNull, bson.TypeUndefined:
		return l.reset(nil)
	default:
		return errors.Errorf("unmarshal list: unexpected BSON type %s", bson.Type(typ))
	}

	var vals []T

	err := bson.RawValue{Type: bson.Type(typ), Value: data}.Unmarshal(&vals)
	if err != nil {
		return errors.Wrap(err, "unmarshal list")
	}

	return l.reset(vals)
}

// MarshalYAML encodes the list as a YAML sequence.
func (l *List[T]) MarshalYAML() (any, error) {
	return l.Slice(), nil
}

// UnmarshalYAML replaces the contents of l with the elements of a YAML sequence.
func (l *List[T]) UnmarshalYAML(node *yaml.Node) error {
	var vals []T

	err := node.Decode(&vals)
	if err != nil {
		return errors.Wrap(err, "unmarshal list")
	}

	return l.reset(vals)
}

// reset replaces the contents of l. Decoders report a consumed list as an error.
func (l *List[T]) reset(vals []T) error {
	if l.consumed {
		return errors.Wrap(ErrConsumed, "unmarshal")
	}

	l.data.Clear()

	for _, v := range vals {
		l.data.PushBack(v)
	}

	return nil
}
