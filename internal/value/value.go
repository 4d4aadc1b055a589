// Package value implements the tagged configuration value used for rule
// settings and other free-form lint options.
//
// A Value is one of four kinds: Null, Scalar (bool, int, float64 or string),
// Sequence (an ordered list of values) or Mapping (string keys to values).
// Values are immutable from the caller's perspective: every accessor that
// exposes children returns copies, and Merge never modifies its inputs.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind identifies which member of the union a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Scalar
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged configuration value. The zero Value is Null.
type Value struct {
	kind   Kind
	scalar any
	items  []Value
	fields map[string]Value
}

// Bool returns a scalar boolean value.
func Bool(b bool) Value { return Value{kind: Scalar, scalar: b} }

// Int returns a scalar integer value.
func Int(n int) Value { return Value{kind: Scalar, scalar: n} }

// Float returns a scalar number. Integral floats are stored as ints so that
// values decoded from JSON compare equal to values built in code.
func Float(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int(f))
	}
	return Value{kind: Scalar, scalar: f}
}

// String returns a scalar string value.
func String(s string) Value { return Value{kind: Scalar, scalar: s} }

// Seq returns a sequence holding copies of items.
func Seq(items ...Value) Value {
	out := make([]Value, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return Value{kind: Sequence, items: out}
}

// Map returns a mapping holding copies of fields.
func Map(fields map[string]Value) Value {
	out := make(map[string]Value, len(fields))
	for k, v := range fields {
		out[k] = v.Clone()
	}
	return Value{kind: Mapping, fields: out}
}

// FromAny converts a decoded YAML/JSON tree (or Go literals) into a Value.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t.Clone(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(t), nil
	case int8:
		return Int(int(t)), nil
	case int16:
		return Int(int(t)), nil
	case int32:
		return Int(int(t)), nil
	case int64:
		return Int(int(t)), nil
	case uint:
		return Int(int(t)), nil
	case uint8:
		return Int(int(t)), nil
	case uint16:
		return Int(int(t)), nil
	case uint32:
		return Int(int(t)), nil
	case uint64:
		return Int(int(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Int(int(n)), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: invalid number %q: %w", t, err)
		}
		return Float(f), nil
	case []Value:
		return Seq(t...), nil
	case []string:
		out := make([]Value, len(t))
		for i, s := range t {
			out[i] = String(s)
		}
		return Value{kind: Sequence, items: out}, nil
	case []any:
		out := make([]Value, len(t))
		for i, it := range t {
			cv, err := FromAny(it)
			if err != nil {
				return Value{}, fmt.Errorf("value: [%d]: %w", i, err)
			}
			out[i] = cv
		}
		return Value{kind: Sequence, items: out}, nil
	case map[string]Value:
		return Map(t), nil
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, it := range t {
			cv, err := FromAny(it)
			if err != nil {
				return Value{}, fmt.Errorf("value: %s: %w", k, err)
			}
			out[k] = cv
		}
		return Value{kind: Mapping, fields: out}, nil
	case map[any]any:
		out := make(map[string]Value, len(t))
		for k, it := range t {
			cv, err := FromAny(it)
			if err != nil {
				return Value{}, fmt.Errorf("value: %v: %w", k, err)
			}
			out[fmt.Sprint(k)] = cv
		}
		return Value{kind: Mapping, fields: out}, nil
	}
	return Value{}, fmt.Errorf("value: unsupported type %s", reflect.TypeOf(v))
}

// MustFromAny is FromAny for literals known to be valid. It panics on error.
func MustFromAny(v any) Value {
	out, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return out
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == Null }

// Scalar returns the scalar payload, or nil when v is not a scalar.
func (v Value) Scalar() any { return v.scalar }

// Len returns the number of items of a sequence or fields of a mapping.
func (v Value) Len() int {
	switch v.kind {
	case Sequence:
		return len(v.items)
	case Mapping:
		return len(v.fields)
	}
	return 0
}

// Items returns a copy of the sequence items.
func (v Value) Items() []Value {
	if v.kind != Sequence {
		return nil
	}
	out := make([]Value, len(v.items))
	for i, it := range v.items {
		out[i] = it.Clone()
	}
	return out
}

// Field returns a copy of the named mapping field.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != Mapping {
		return Value{}, false
	}
	f, ok := v.fields[key]
	return f.Clone(), ok
}

// Keys returns the mapping keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != Mapping {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case Sequence:
		items := make([]Value, len(v.items))
		for i, it := range v.items {
			items[i] = it.Clone()
		}
		return Value{kind: Sequence, items: items}
	case Mapping:
		fields := make(map[string]Value, len(v.fields))
		for k, f := range v.fields {
			fields[k] = f.Clone()
		}
		return Value{kind: Mapping, fields: fields}
	}
	return v
}

// Interface converts v back into plain Go values ([]any, map[string]any and
// scalars), suitable for encoding.
func (v Value) Interface() any {
	switch v.kind {
	case Scalar:
		return v.scalar
	case Sequence:
		out := make([]any, len(v.items))
		for i, it := range v.items {
			out[i] = it.Interface()
		}
		return out
	case Mapping:
		out := make(map[string]any, len(v.fields))
		for k, f := range v.fields {
			out[k] = f.Interface()
		}
		return out
	}
	return nil
}

// Equal reports whether v and o hold the same tree.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Scalar:
		return v.scalar == o.scalar
	case Sequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case Mapping:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for k, f := range v.fields {
			of, ok := o.fields[k]
			if !ok || !f.Equal(of) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v as compact JSON.
func (v Value) String() string {
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return fmt.Sprintf("%v", v.Interface())
	}
	return string(data)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = out
	return nil
}
