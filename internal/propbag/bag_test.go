package propbag

import "testing"

func TestSetGetRoundTrip(t *testing.T) {
	b := New()
	b.Set("name", String("max"))

	v := b.Get("name", KindString)
	if v.Str != "max" {
		t.Errorf("Get(name) = %q, want %q", v.Str, "max")
	}
}

func TestAbsentKeyReturnsTombstone(t *testing.T) {
	b := New()

	tests := []struct {
		name string
		kind Kind
		want Value
	}{
		{"string tombstone", KindString, String("")},
		{"int tombstone", KindInt, Int(minInt64)},
		{"bool tombstone", KindBool, Bool(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Get("missing", tt.kind)
			if got.Kind != tt.want.Kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.want.Kind)
			}
		})
	}
}

func TestTryGetDistinguishesAbsentFromTombstoneValue(t *testing.T) {
	b := New()
	b.Set("score", Int(minInt64)) // legitimately the tombstone value

	v, ok := b.TryGet("score")
	if !ok {
		t.Fatalf("expected TryGet to report presence")
	}
	if v.Int != minInt64 {
		t.Errorf("value = %d, want %d", v.Int, minInt64)
	}

	_, ok = b.TryGet("absent")
	if ok {
		t.Errorf("expected TryGet to report absence")
	}
}

func TestSetIsDeleteThenAppend(t *testing.T) {
	b := New()
	b.Set("a", Int(1))
	b.Set("b", Int(2))
	b.Set("a", Int(3)) // re-set moves "a" to the end

	keys, values := b.All()
	wantKeys := []string{"b", "a"}
	for i, k := range wantKeys {
		if keys[i] != k {
			t.Fatalf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
	if values[1].Int != 3 {
		t.Errorf("a = %d, want 3", values[1].Int)
	}
}

func TestDelete(t *testing.T) {
	b := New()
	b.Set("k", String("v"))

	if !b.Delete("k") {
		t.Fatalf("expected Delete to report true for present key")
	}
	if b.Delete("k") {
		t.Errorf("expected second Delete to report false")
	}
	if b.Len() != 0 {
		t.Errorf("expected bag to be empty after delete, len = %d", b.Len())
	}
}

func TestMergeKeepsExistingValues(t *testing.T) {
	b := New()
	b.Set("a", Int(1))

	b.Merge([]string{"a", "b"}, []Value{Int(99), Int(2)})

	if v := b.Get("a", KindInt); v.Int != 1 {
		t.Errorf("a = %d, want 1 (merge must not overwrite)", v.Int)
	}
	if v := b.Get("b", KindInt); v.Int != 2 {
		t.Errorf("b = %d, want 2 (merge must add unseen keys)", v.Int)
	}
}

func TestSetAllReplaces(t *testing.T) {
	b := New()
	b.Set("old", String("x"))

	b.SetAll([]string{"new"}, []Value{Int(7)})

	if _, ok := b.TryGet("old"); ok {
		t.Errorf("expected SetAll to discard previous contents")
	}
	if v := b.Get("new", KindInt); v.Int != 7 {
		t.Errorf("new = %d, want 7", v.Int)
	}
}

func TestClear(t *testing.T) {
	b := New()
	b.Set("k", String("v"))
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty bag after Clear, len = %d", b.Len())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	inner := New()
	inner.Set("x", Int(1))
	b := New()
	b.Set("nested", FromBag(inner))

	clone := b.Clone()
	inner.Set("x", Int(999))

	v := clone.Get("nested", KindBag)
	if got := v.Bag.Get("x", KindInt); got.Int != 1 {
		t.Errorf("clone aliased nested bag: x = %d, want 1", got.Int)
	}
}

func TestNewArrayRejectsMixedTypes(t *testing.T) {
	_, err := NewArray([]Value{Int(1), String("x")})
	if err == nil {
		t.Fatalf("expected error for mixed-type array")
	}
}

func TestNewArrayRejectsNestedContainers(t *testing.T) {
	_, err := NewArray([]Value{FromBag(New())})
	if err == nil {
		t.Fatalf("expected error for array of bags")
	}
}

func TestNewArrayEmpty(t *testing.T) {
	v, err := NewArray(nil)
	if err != nil {
		t.Fatalf("unexpected error for empty array: %v", err)
	}
	if v.Kind != KindArray || len(v.Array) != 0 {
		t.Errorf("expected empty array value, got %+v", v)
	}
}
