package shard

import "sort"

// LocalScanIDs returns up to limit external ids of kind, starting after
// skipping the first skip, restricted to typeID if non-nil (spec.md
// §4.8(C) step 3: "fan out the per-shard local scans").
//
// Within a type, ids are walked in ascending numeric order. This is a
// documented approximation of "insertion order within a type" (spec.md
// §4.8(C)'s ordering guarantee): ascending id order matches insertion
// order for every type none of whose members was placed in a slot freed
// by an earlier delete (of any type) and handed out again;
// tracking true insertion order independent of slot reuse would need an
// additional per-type linked structure the scan's own consumers (bounded
// pagination, not an audit log) don't need. See DESIGN.md.
func (s *Shard) LocalScanIDs(kind EntityKind, typeID *uint16, skip, limit int) []uint64 {
	if limit <= 0 {
		return nil
	}
	in := s.interner(kind)

	var typeIDs []uint16
	if typeID != nil {
		typeIDs = []uint16{*typeID}
	} else {
		for id := range in.Counts() {
			typeIDs = append(typeIDs, id)
		}
		sort.Slice(typeIDs, func(i, j int) bool { return typeIDs[i] < typeIDs[j] })
	}

	var out []uint64
	remaining := limit
	for _, t := range typeIDs {
		// IDsOf returns a roaring64 bitmap's array form, always ascending.
		ids := in.IDsOf(t)
		for _, id := range ids {
			if skip > 0 {
				skip--
				continue
			}
			out = append(out, id)
			remaining--
			if remaining == 0 {
				return out
			}
		}
	}
	return out
}
