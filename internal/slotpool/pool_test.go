package slotpool

import "testing"

func TestNewPoolHasZeroEntity(t *testing.T) {
	p := New[string]()
	if p.Len() != 1 {
		t.Fatalf("expected length 1 (zero entity only), got %d", p.Len())
	}
	if p.Live(0) {
		t.Errorf("index 0 must never report live")
	}
}

func TestAllocAppendsWhenNoDeletedSlots(t *testing.T) {
	p := New[string]()
	idx := p.Alloc("a")
	if idx != 1 {
		t.Fatalf("expected first alloc at index 1, got %d", idx)
	}
	if !p.Live(idx) {
		t.Errorf("expected allocated slot to be live")
	}
	if p.Get(idx) != "a" {
		t.Errorf("Get(%d) = %q, want %q", idx, p.Get(idx), "a")
	}
}

func TestFreeThenAllocReusesSmallestIndex(t *testing.T) {
	p := New[string]()
	a := p.Alloc("a")
	b := p.Alloc("b")
	p.Alloc("c")

	p.Free(a)
	p.Free(b)

	reused := p.Alloc("d")
	if reused != a {
		t.Fatalf("expected reuse of smallest deleted index %d, got %d", a, reused)
	}
	if p.Get(reused) != "d" {
		t.Errorf("expected reused slot to hold new value")
	}

	reused2 := p.Alloc("e")
	if reused2 != b {
		t.Fatalf("expected second reuse at %d, got %d", b, reused2)
	}
}

func TestFreeOverwritesWithZeroValue(t *testing.T) {
	p := New[string]()
	idx := p.Alloc("a")
	p.Free(idx)

	if p.Live(idx) {
		t.Errorf("expected freed slot to report dead")
	}
	if p.Get(idx) != "" {
		t.Errorf("expected freed slot to hold zero value, got %q", p.Get(idx))
	}
}

func TestFreeIndexZeroIsNoop(t *testing.T) {
	p := New[string]()
	p.Free(0)
	if p.DeletedCount() != 0 {
		t.Errorf("expected freeing index 0 to be a no-op")
	}
}

func TestFreeOutOfRangeIsNoop(t *testing.T) {
	p := New[string]()
	p.Free(999)
	if p.DeletedCount() != 0 {
		t.Errorf("expected freeing out-of-range index to be a no-op")
	}
}

func TestVectorNeverShrinks(t *testing.T) {
	p := New[string]()
	for i := 0; i < 1000; i++ {
		idx := p.Alloc("x")
		p.Free(idx)
	}
	if p.Len() != 2 {
		t.Fatalf("expected stable length of 2 (zero entity + 1 reused slot), got %d", p.Len())
	}
}

func TestReserveGrowsCapacityNotLength(t *testing.T) {
	p := New[string]()
	p.Reserve(100)
	if p.Len() != 1 {
		t.Errorf("Reserve must not allocate slots, length = %d", p.Len())
	}
	idx := p.Alloc("a")
	if idx != 1 {
		t.Errorf("expected first alloc still at index 1 after Reserve, got %d", idx)
	}
}
