package shard

import "testing"

func TestLocalScanIDsRespectsLimit(t *testing.T) {
	s := newTestShard()
	typeID := s.TypeGetOrInsertLeader(NodeEntity, "Node")
	for i := 0; i < 10; i++ {
		s.AddEmptyNode(typeID, string(rune('a'+i)))
	}

	ids := s.LocalScanIDs(NodeEntity, nil, 0, 5)
	if len(ids) != 5 {
		t.Errorf("expected 5 ids, got %d", len(ids))
	}
}

func TestLocalScanIDsSkip(t *testing.T) {
	s := newTestShard()
	typeID := s.TypeGetOrInsertLeader(NodeEntity, "Node")
	var all []uint64
	for i := 0; i < 5; i++ {
		id, _ := s.AddEmptyNode(typeID, string(rune('a'+i)))
		all = append(all, id)
	}

	ids := s.LocalScanIDs(NodeEntity, nil, 2, 10)
	if len(ids) != 3 {
		t.Fatalf("expected 3 remaining ids, got %d", len(ids))
	}
	if ids[0] != all[2] {
		t.Errorf("expected scan to resume after skip at %d, got %d", all[2], ids[0])
	}
}

func TestLocalScanIDsFiltersByType(t *testing.T) {
	s := newTestShard()
	nodeT := s.TypeGetOrInsertLeader(NodeEntity, "Node")
	userT := s.TypeGetOrInsertLeader(NodeEntity, "User")
	for i := 0; i < 8; i++ {
		s.AddEmptyNode(nodeT, string(rune('a'+i)))
	}
	for i := 0; i < 2; i++ {
		s.AddEmptyNode(userT, string(rune('x'+i)))
	}

	ids := s.LocalScanIDs(NodeEntity, &userT, 0, 100)
	if len(ids) != 2 {
		t.Errorf("expected exactly 2 User ids, got %d", len(ids))
	}
}

func TestLocalScanIDsZeroLimit(t *testing.T) {
	s := newTestShard()
	typeID := s.TypeGetOrInsertLeader(NodeEntity, "Node")
	s.AddEmptyNode(typeID, "a")

	if ids := s.LocalScanIDs(NodeEntity, nil, 0, 0); ids != nil {
		t.Errorf("expected nil for zero limit, got %v", ids)
	}
}
