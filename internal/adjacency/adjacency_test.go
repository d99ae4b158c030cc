package adjacency

import "testing"

func TestAddCreatesGroupLazily(t *testing.T) {
	var l List
	l.Add(1, 100, 200)

	if len(l) != 1 {
		t.Fatalf("expected one group, got %d", len(l))
	}
	if l[0].TypeID != 1 || len(l[0].Ids) != 1 {
		t.Fatalf("unexpected group contents: %+v", l[0])
	}
}

func TestAddAppendsToExistingGroup(t *testing.T) {
	var l List
	l.Add(1, 100, 200)
	l.Add(1, 101, 201)

	if len(l) != 1 {
		t.Fatalf("expected entries to share one group, got %d groups", len(l))
	}
	if len(l[0].Ids) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(l[0].Ids))
	}
}

func TestAddSeparatesDifferentTypes(t *testing.T) {
	var l List
	l.Add(1, 100, 200)
	l.Add(2, 100, 201)

	if len(l) != 2 {
		t.Fatalf("expected 2 groups for 2 types, got %d", len(l))
	}
}

func TestRemoveByRelPreservesOrder(t *testing.T) {
	var l List
	l.Add(1, 10, 100)
	l.Add(1, 20, 200)
	l.Add(1, 30, 300)

	if !l.RemoveByRel(1, 200) {
		t.Fatalf("expected removal to succeed")
	}

	ids := l[0].Ids
	if len(ids) != 2 || ids[0].Rel != 100 || ids[1].Rel != 300 {
		t.Fatalf("expected order-preserving removal, got %+v", ids)
	}
}

func TestRemoveByRelMissingReturnsFalse(t *testing.T) {
	var l List
	l.Add(1, 10, 100)

	if l.RemoveByRel(1, 999) {
		t.Errorf("expected removal of missing rel to report false")
	}
	if l.RemoveByRel(2, 100) {
		t.Errorf("expected removal from missing type to report false")
	}
}

func TestDegreeUnfiltered(t *testing.T) {
	var l List
	l.Add(1, 10, 100)
	l.Add(2, 20, 200)

	if got := l.Degree(nil); got != 2 {
		t.Fatalf("Degree(nil) = %d, want 2", got)
	}
}

func TestDegreeFiltered(t *testing.T) {
	var l List
	l.Add(1, 10, 100)
	l.Add(2, 20, 200)
	l.Add(2, 21, 201)

	if got := l.Degree(map[uint16]bool{2: true}); got != 2 {
		t.Fatalf("Degree(filter={2}) = %d, want 2", got)
	}
}

func TestGroupByPeerShardPartitions(t *testing.T) {
	var l List
	l.Add(1, encodeID(0, 1), 900)
	l.Add(1, encodeID(1, 1), 901)
	l.Add(1, encodeID(1, 2), 902)

	shardOf := func(id uint64) uint8 { return uint8(id & 0xFF) }
	byShard := l.GroupByPeerShard(nil, shardOf, func(te TypedEntry) uint64 { return te.Entry.Rel })

	if len(byShard[0]) != 1 || len(byShard[1]) != 2 {
		t.Fatalf("unexpected partition: %+v", byShard)
	}
}

// encodeID mirrors internal/ident.Encode without importing it, to keep
// this test focused on adjacency's own partitioning logic.
func encodeID(shardID uint8, index uint64) uint64 {
	return (index << 8) | uint64(shardID)
}
