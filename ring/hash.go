// Package ring implements the consistent-hashing ring: a sorted sequence of
// replica tags over which objects and servers are located by ordered binary
// search. It has no knowledge of what a "server" or "object" actually store;
// that is the concern of the store and loadbalancer packages.
package ring

// djb2Seed is the initial accumulator for HashKey. Normative: test vectors
// in hash_test.go pin concrete outputs against this exact seed.
const djb2Seed uint32 = 5381

// mixMultiplier is the Murmur-style bit-mixing constant used by HashServer.
// Normative: changing it would change every replica's position on the ring.
const mixMultiplier uint32 = 0x45d9f3b

// HashKey hashes the raw bytes of an object key using the djb2 string-hash
// recurrence: acc = acc*33 + b, seeded at 5381. It operates over len(key)
// bytes with no terminator, unlike the C original's null-terminated strings.
//
// HashKey("") == 5381.
// HashKey("a") == 177670.
func HashKey(key string) uint32 {
	acc := djb2Seed
	for i := 0; i < len(key); i++ {
		acc = (acc << 5) + acc + uint32(key[i])
	}
	return acc
}

// HashServer mixes a 32-bit integer to spread sequential or clustered
// replica keys across the ring. It applies the mixing step twice before the
// final fold, matching the reference implementation's three-line body
// exactly: two multiply-and-fold rounds, then one fold with no multiply.
//
// HashServer(0) == 0.
func HashServer(x uint32) uint32 {
	x = ((x >> 16) ^ x) * mixMultiplier
	x = ((x >> 16) ^ x) * mixMultiplier
	x = (x >> 16) ^ x
	return x
}

// replicaFactor is the fixed multiplier R from the replica-keying formula
// replica_key(S, k) = k*R + S. It is normative: ring positions must be
// reproducible bit-for-bit across implementations.
const replicaFactor uint32 = 100000

// NumReplicas is the fixed number of virtual replicas placed on the ring for
// every live server. The placement invariant (exactly three tags per live
// server id) depends on this being exactly 3.
const NumReplicas = 3

// ReplicaKey computes the k-th replica input for server id, for k in
// [0, NumReplicas). It is hashed with HashServer to produce that replica's
// ring position.
func ReplicaKey(id ServerID, k int) uint32 {
	return uint32(k)*replicaFactor + uint32(id)
}
