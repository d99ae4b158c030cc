package propbag

import "hash/fnv"

// entry is one (key, value) pair plus its interned key token, stored in
// insertion order.
type entry struct {
	key   string
	token uint64
	value Value
}

// Bag is the ordered property bag attached to a node or relationship.
// Iteration order is insertion order after the most recent Set of each
// key (spec.md §4.2: "set(key, v) is equivalent to delete(key) followed
// by append"). Lookup compares the 64-bit key token before falling back
// to a string compare, per spec.md §3's "each key string is additionally
// interned to a 64-bit token ... so property lookup compares tokens
// first" — tokens are not globally unique (they are a hash, not an
// assigned id), so a token match is a candidate, confirmed by the string.
type Bag struct {
	entries []entry
}

// New returns an empty property bag.
func New() *Bag {
	return &Bag{}
}

func keyToken(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

func (b *Bag) indexOf(key string) int {
	token := keyToken(key)
	for i, e := range b.entries {
		if e.token == token && e.key == key {
			return i
		}
	}
	return -1
}

// TryGet returns the value for key and true if present, or the zero
// Value and false otherwise. Internal callers that need to distinguish
// "absent" from "legitimately the tombstone value" should prefer this
// over Get (spec.md §9's documented limitation of the typed getters).
func (b *Bag) TryGet(key string) (Value, bool) {
	if i := b.indexOf(key); i >= 0 {
		return b.entries[i].value, true
	}
	return Value{}, false
}

// Get returns the value for key, or the typed tombstone matching want's
// kind if key is absent or present with a different kind. This is the
// typed-getter dispatch spec.md §9 describes.
func (b *Bag) Get(key string, want Kind) Value {
	v, ok := b.TryGet(key)
	if !ok || v.Kind != want {
		return tombstone(want)
	}
	return v
}

// Set stores value under key, replacing any existing entry and moving it
// to the end of iteration order (delete-then-append semantics, spec.md
// §4.2).
func (b *Bag) Set(key string, value Value) {
	if i := b.indexOf(key); i >= 0 {
		b.entries = append(b.entries[:i], b.entries[i+1:]...)
	}
	b.entries = append(b.entries, entry{key: key, token: keyToken(key), value: value})
}

// Delete removes key if present, reporting whether it was present.
func (b *Bag) Delete(key string) bool {
	i := b.indexOf(key)
	if i < 0 {
		return false
	}
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	return true
}

// SetAll replaces the entire bag's contents with m, in iteration order of
// m's keys as given (the caller-supplied slice order, not re-sorted).
// This is the "replace" semantics of spec.md §4.2's set_all/properties_reset.
func (b *Bag) SetAll(keys []string, values []Value) {
	b.entries = b.entries[:0]
	for i, k := range keys {
		b.entries = append(b.entries, entry{key: k, token: keyToken(k), value: values[i]})
	}
}

// Merge overlays m onto the bag: existing keys keep their current value,
// only keys not already present are added, appended in the given order
// (spec.md §4.2's merge/properties_set semantics).
func (b *Bag) Merge(keys []string, values []Value) {
	for i, k := range keys {
		if _, ok := b.TryGet(k); ok {
			continue
		}
		b.entries = append(b.entries, entry{key: k, token: keyToken(k), value: values[i]})
	}
}

// Clear empties the bag.
func (b *Bag) Clear() {
	b.entries = b.entries[:0]
}

// Len reports the number of keys currently in the bag.
func (b *Bag) Len() int {
	return len(b.entries)
}

// All returns the bag's keys and values in iteration order. The returned
// slices are copies; mutating them does not affect the bag.
func (b *Bag) All() ([]string, []Value) {
	keys := make([]string, len(b.entries))
	values := make([]Value, len(b.entries))
	for i, e := range b.entries {
		keys[i] = e.key
		values[i] = e.value
	}
	return keys, values
}

// Clone returns a deep-enough copy of the bag: the entry slice is copied,
// and nested bag values are recursively cloned so mutating the clone
// never affects the original (records own their property bag for their
// whole lifetime, so this is used when properties are seeded from a
// caller-supplied bag rather than aliased to it).
func (b *Bag) Clone() *Bag {
	out := &Bag{entries: make([]entry, len(b.entries))}
	for i, e := range b.entries {
		v := e.value
		if v.Kind == KindBag && v.Bag != nil {
			v.Bag = v.Bag.Clone()
		}
		out.entries[i] = entry{key: e.key, token: e.token, value: v}
	}
	return out
}
