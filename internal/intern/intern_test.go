package intern

import "testing"

func TestNewReservesEmptyType(t *testing.T) {
	in := New()
	id, ok := in.Get("")
	if !ok || id != EmptyID {
		t.Fatalf("expected empty type reserved at id 0, got id=%d ok=%v", id, ok)
	}
	name, ok := in.NameOf(EmptyID)
	if !ok || name != "" {
		t.Fatalf("expected NameOf(0) = \"\", got %q", name)
	}
}

func TestGetOrInsertIsIdempotent(t *testing.T) {
	in := New()
	a := in.GetOrInsert("Person")
	b := in.GetOrInsert("Person")
	if a != b {
		t.Errorf("GetOrInsert not idempotent: %d != %d", a, b)
	}
}

func TestGetOrInsertAssignsMonotonically(t *testing.T) {
	in := New()
	a := in.GetOrInsert("A")
	b := in.GetOrInsert("B")
	if b != a+1 {
		t.Errorf("expected monotonic ids, got a=%d b=%d", a, b)
	}
}

func TestInsertCachesBroadcastAssignment(t *testing.T) {
	in := New()
	in.Insert("KNOWS", 5)

	id, ok := in.Get("KNOWS")
	if !ok || id != 5 {
		t.Fatalf("expected KNOWS -> 5, got id=%d ok=%v", id, ok)
	}
	name, ok := in.NameOf(5)
	if !ok || name != "KNOWS" {
		t.Fatalf("expected NameOf(5) = KNOWS, got %q", name)
	}
}

func TestIDBitmapLifecycle(t *testing.T) {
	in := New()
	typeID := in.GetOrInsert("Person")

	in.AddID(typeID, 256)
	in.AddID(typeID, 512)
	if got := in.Count(typeID); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}

	in.RemoveID(typeID, 256)
	if got := in.Count(typeID); got != 1 {
		t.Fatalf("Count after remove = %d, want 1", got)
	}

	// Removing the last member keeps the name binding alive (spec.md §4.1).
	in.RemoveID(typeID, 512)
	if got := in.Count(typeID); got != 0 {
		t.Fatalf("Count after removing last member = %d, want 0", got)
	}
	if _, ok := in.NameOf(typeID); !ok {
		t.Errorf("expected type binding to survive an empty id-set")
	}
}

func TestAllIDsUnionsAcrossTypes(t *testing.T) {
	in := New()
	person := in.GetOrInsert("Person")
	company := in.GetOrInsert("Company")
	in.AddID(person, 1)
	in.AddID(company, 2)

	all := in.AllIDs()
	if len(all) != 2 {
		t.Fatalf("expected 2 ids across types, got %d", len(all))
	}
}

func TestCountsIncludesZeroCardinalityTypes(t *testing.T) {
	in := New()
	typeID := in.GetOrInsert("Empty")

	counts := in.Counts()
	if c, ok := counts[typeID]; !ok || c != 0 {
		t.Fatalf("expected zero-count entry for %d, got %v ok=%v", typeID, c, ok)
	}
}

func TestTypesIncludesReservedEmptyName(t *testing.T) {
	in := New()
	in.GetOrInsert("Person")

	types := in.Types()
	found := false
	for _, name := range types {
		if name == "" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected reserved empty type name in Types()")
	}
}
