package propbag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FromJSON parses a JSON object payload into a new Bag, implementing the
// wire mapping spec.md §6 describes: signed and unsigned integers become
// int64 (unsigned narrowed), real numbers become float64, strings/bools
// map directly, nested objects become nested bags, homogeneous arrays of
// scalars become array Values, nulls are dropped, and arrays of objects
// or arrays of arrays are rejected.
//
// The payload must decode to a JSON object at the top level; any other
// JSON value (array, scalar, null) is rejected.
func FromJSON(data []byte) (*Bag, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("propbag: decode JSON object: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("propbag: decode JSON object: payload is null")
	}
	return fromMap(raw)
}

func fromMap(raw map[string]any) (*Bag, error) {
	b := New()
	for key, v := range raw {
		val, ok, err := fromAny(v)
		if err != nil {
			return nil, fmt.Errorf("propbag: key %q: %w", key, err)
		}
		if !ok {
			// null input: dropped, per spec.md §3/§6.
			continue
		}
		b.Set(key, val)
	}
	return b, nil
}

// fromAny converts one decoded JSON value into a propbag Value. The bool
// result is false (with a nil error) when v is JSON null, signaling the
// caller to drop the key.
func fromAny(v any) (Value, bool, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, false, nil
	case string:
		return String(x), true, nil
	case bool:
		return Bool(x), true, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), true, nil
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			// Above the int64 range: narrowed, not widened to float64.
			return Int(int64(u)), true, nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, false, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return Float(f), true, nil
	case map[string]any:
		nested, err := fromMap(x)
		if err != nil {
			return Value{}, false, err
		}
		return FromBag(nested), true, nil
	case []any:
		val, err := fromArray(x)
		if err != nil {
			return Value{}, false, err
		}
		return val, true, nil
	default:
		return Value{}, false, fmt.Errorf("unsupported JSON value of type %T", x)
	}
}

func fromArray(raw []any) (Value, error) {
	elems := make([]Value, 0, len(raw))
	for _, item := range raw {
		switch item.(type) {
		case map[string]any:
			return Value{}, fmt.Errorf("arrays of objects are rejected")
		case []any:
			return Value{}, fmt.Errorf("arrays of arrays are rejected")
		case nil:
			return Value{}, fmt.Errorf("null elements inside arrays are rejected")
		}
		v, ok, err := fromAny(item)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			continue
		}
		elems = append(elems, v)
	}
	return NewArray(elems)
}

// ToJSON renders the bag as a JSON object, the inverse of FromJSON. It is
// provided for symmetry and diagnostics; the core's external contract
// only requires the FromJSON direction (spec.md §6).
func (b *Bag) ToJSON() ([]byte, error) {
	keys, values := b.All()
	out := make(map[string]any, len(keys))
	for i, k := range keys {
		out[k] = toAny(values[i])
	}
	return json.Marshal(out)
}

func toAny(v Value) any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindBool:
		return v.Bool
	case KindBag:
		if v.Bag == nil {
			return map[string]any{}
		}
		keys, values := v.Bag.All()
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			out[k] = toAny(values[i])
		}
		return out
	case KindArray:
		out := make([]any, len(v.Array))
		for i, e := range v.Array {
			out[i] = toAny(e)
		}
		return out
	default:
		return nil
	}
}
