// Package propbag implements the ordered property bag attached to every
// node and relationship (spec.md §3, §4.2): a tagged-union value type,
// an insertion-ordered key/value list with a token-interned fast path for
// key lookup, and the typed-tombstone semantics absent keys return.
package propbag

import "fmt"

// Kind tags which branch of the value union is populated.
type Kind uint8

const (
	// KindNone marks the zero Value — never stored, only returned as a
	// tombstone component when a typed getter misses.
	KindNone Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindBag
	KindArray
)

// Value is the tagged union spec.md §3 describes: string, signed 64-bit
// integer, double, boolean, a nested bag, or a homogeneous array of one
// of the scalar kinds. Only the field matching Kind is meaningful; the
// others are zero.
type Value struct {
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Bag   *Bag
	Array []Value
	Kind  Kind
}

// ArrayKind reports the element kind of an array Value, or KindNone if v
// is not an array or the array is empty. Arrays are homogeneous by
// construction (see NewArray), so the first element's kind determines it.
func (v Value) ArrayKind() Kind {
	if v.Kind != KindArray || len(v.Array) == 0 {
		return KindNone
	}
	return v.Array[0].Kind
}

// String constructs a string-kind Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Int constructs an int-kind Value. Callers that have an unsigned input
// must narrow it themselves (spec.md §3: "unsigned inputs are narrowed to
// signed"); FromJSON performs this narrowing for the JSON bridge.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float constructs a float-kind Value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Bool constructs a bool-kind Value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// FromBag constructs a bag-kind Value wrapping a nested property bag.
func FromBag(b *Bag) Value { return Value{Kind: KindBag, Bag: b} }

// NewArray constructs an array-kind Value from homogeneous scalar
// elements. It returns an error (rather than silently coercing) if the
// elements mix kinds or contain a bag/array element, matching spec.md
// §3's "mixed-type arrays are rejected" and §6's "arrays of objects or
// arrays of arrays are rejected".
func NewArray(elems []Value) (Value, error) {
	if len(elems) == 0 {
		return Value{Kind: KindArray}, nil
	}
	want := elems[0].Kind
	switch want {
	case KindString, KindInt, KindFloat, KindBool:
	default:
		return Value{}, fmt.Errorf("propbag: array elements must be string, int, float or bool, got %v", want)
	}
	for _, e := range elems {
		if e.Kind != want {
			return Value{}, fmt.Errorf("propbag: mixed-type array (%v and %v)", want, e.Kind)
		}
	}
	return Value{Kind: KindArray, Array: elems}, nil
}

// tombstone returns the typed sentinel spec.md §4.2 defines for the
// absent-key case of each typed getter: empty string, INT64_MIN, the
// smallest positive float64, false, and an empty bag respectively.
func tombstone(k Kind) Value {
	switch k {
	case KindString:
		return String("")
	case KindInt:
		return Int(minInt64)
	case KindFloat:
		return Float(minPositiveFloat64)
	case KindBool:
		return Bool(false)
	case KindBag:
		return FromBag(New())
	default:
		return Value{}
	}
}

const minInt64 = -1 << 63

// minPositiveFloat64 is the smallest positive (non-zero, non-subnormal)
// float64, matching the original design's "f64 minimum positive"
// tombstone (spec.md §4.2).
const minPositiveFloat64 = 2.2250738585072014e-308
