package shard

// Type operations delegate directly to the relevant interner (spec.md
// §4.1, §6). Everything here is read-only except TypeInsertBroadcast and
// TypeGetOrInsertLeader, the two mutation paths spec.md §4.7 allows: the
// former applies an (name, id) pair already agreed by shard 0, the
// latter assigns a new id and must only be called on shard 0 itself.

// TypesCount returns the number of distinct type names assigned for
// kind, including the reserved empty type.
func (s *Shard) TypesCount(kind EntityKind) int {
	return s.interner(kind).TypesCount()
}

// TypeCount returns the number of live entities registered under id.
func (s *Shard) TypeCount(kind EntityKind, id uint16) uint64 {
	return s.interner(kind).Count(id)
}

// TypeCountByName resolves name to an id first, returning (0, false) if
// the name has never been assigned.
func (s *Shard) TypeCountByName(kind EntityKind, name string) (uint64, bool) {
	id, ok := s.interner(kind).Get(name)
	if !ok {
		return 0, false
	}
	return s.interner(kind).Count(id), true
}

// TypesList returns every type name ever assigned for kind.
func (s *Shard) TypesList(kind EntityKind) []string {
	return s.interner(kind).Types()
}

// TypeName returns the name bound to id, or ("", false) if unassigned.
func (s *Shard) TypeName(kind EntityKind, id uint16) (string, bool) {
	return s.interner(kind).NameOf(id)
}

// TypeID returns the id bound to name, or (0, false) if unassigned.
func (s *Shard) TypeID(kind EntityKind, name string) (uint16, bool) {
	return s.interner(kind).Get(name)
}

// TypeGetOrInsertLeader assigns name a new id if it has none, or returns
// its existing id. Only shard 0 may call this — every other shard learns
// new type ids via TypeInsertBroadcast (spec.md §4.7's single-writer
// lock is the caller's responsibility; Shard itself has no notion of
// "is this shard 0", that's the graph package's job).
func (s *Shard) TypeGetOrInsertLeader(kind EntityKind, name string) uint16 {
	return s.interner(kind).GetOrInsert(name)
}

// TypeInsertBroadcast applies an (name, id) pair already agreed on shard
// 0, idempotently (spec.md §4.7: "broadcasts insert(name, id) to every
// shard, including itself").
func (s *Shard) TypeInsertBroadcast(kind EntityKind, name string, id uint16) {
	s.interner(kind).Insert(name, id)
}

// TypeCounts returns a count per assigned type id for kind, including
// types whose count is currently zero. This feeds the global scan
// protocol's first step (spec.md §4.8(C): "query every shard for its
// per-type-id count maps").
func (s *Shard) TypeCounts(kind EntityKind) map[uint16]uint64 {
	return s.interner(kind).Counts()
}
