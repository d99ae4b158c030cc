// Package ident implements the global identity scheme shared by every
// shard: the external id encoding described in spec.md §3, and the
// deterministic routing functions used to find the shard that owns a
// given id or a given (type, key) tuple.
//
// Every function here is pure and lock-free — id encoding and routing
// hashes never touch shard state.
package ident

import (
	"hash/fnv"
	"math/bits"
)

// ShardBits is the number of low bits of an external id reserved for the
// owning shard. 8 bits caps a single graph at 256 shards, comfortably
// above any realistic core count for the scale-up design spec.md targets.
const ShardBits = 8

// ShardMask isolates the shard component of an encoded id.
const ShardMask = 1<<ShardBits - 1

// Invalid is the external id that never denotes a live entity: id 0 is
// reserved at every interface (spec.md §3, §6).
const Invalid uint64 = 0

// Encode packs a shard id and a dense internal index into a single
// external id, per spec.md §3: (internal_index << 8) | shard_id.
func Encode(shardID uint8, index uint64) uint64 {
	return (index << ShardBits) | uint64(shardID)
}

// Decode splits an external id back into its shard and index components.
// It performs no validation; callers that need to reject malformed ids
// should use Valid.
func Decode(id uint64) (shardID uint8, index uint64) {
	return uint8(id & ShardMask), id >> ShardBits
}

// ShardOf returns the shard component of an external id.
func ShardOf(id uint64) uint8 {
	return uint8(id & ShardMask)
}

// IndexOf returns the internal-index component of an external id.
func IndexOf(id uint64) uint64 {
	return id >> ShardBits
}

// Valid reports whether id is a well-formed, non-sentinel external id for
// the given shard: the shard component must match shardID and index must
// fall within [1, length) (index 0 is the zero entity, never a valid
// lookup target). This is the "encode(decode(id)) == id" round-trip
// clause from spec.md §4.5, applied symmetrically to both nodes and
// relationships (see DESIGN.md, Open Question 1).
func Valid(id uint64, shardID uint8, length uint64) bool {
	if id == Invalid {
		return false
	}
	gotShard, index := Decode(id)
	if gotShard != shardID {
		return false
	}
	if index == 0 || index >= length {
		return false
	}
	return Encode(gotShard, index) == id
}

// RouteKey computes the shard that owns a (type, key) tuple, using the
// fast-range reduction spec.md §4.7 specifies: shard = (hash64(type +
// "-" + key) * N) >> 64. This is Lemire's technique for mapping a 64-bit
// hash uniformly onto [0, N) without a division; bits.Mul64 gives the
// high word of the 128-bit product directly, which is exactly what the
// formula's ">> 64" means on a fixed-width multiply.
//
// numShards must be > 0; callers own that invariant (it is fixed for the
// lifetime of a Graph).
func RouteKey(typeName, key string, numShards int) int {
	h := hash64(typeName, key)
	hi, _ := bits.Mul64(h, uint64(numShards))
	return int(hi)
}

// hash64 combines a type name and key into the 64-bit digest RouteKey
// reduces. FNV-1a matches torua's own GetShardForKey, the hashing
// choice this package's routing is adapted from. RouteKey keeps only the
// high bits of its product, and raw FNV-1a leaves those bits nearly
// unchanged when keys differ only in their last bytes, so the FNV sum is
// passed through a 64-bit finalizer that spreads every input bit across
// the whole word.
func hash64(typeName, key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(typeName))
	h.Write([]byte("-"))
	h.Write([]byte(key))
	x := h.Sum64()
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
