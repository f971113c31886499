package loadbalancer

import (
	"go.uber.org/zap"

	"github.com/calincoman/Load-Balancer/ring"
)

// remapOnInsert runs after a new tag has been inserted at position p. It
// walks the donor — the tag now immediately after p — and migrates every
// key whose placement changed as a result of the insertion.
//
// p must be the position of the just-inserted tag; the ring must already
// reflect the insertion (SPEC_FULL.md §4.3: remap runs after each of the
// three insertions independently).
func (lb *LoadBalancer) remapOnInsert(p int) {
	insertedID := lb.ring.At(p).ID
	donor := lb.ring.Next(p)
	if donor.ID == insertedID {
		// Another replica of the same server succeeds us: nothing to move.
		return
	}

	donorStore := lb.servers[donor.ID]
	moved := 0
	for _, kv := range donorStore.Iterate() {
		h := ring.HashKey(kv.Key)
		newID := lb.ring.LocateObject(h)
		if newID != donor.ID {
			lb.servers[newID].Put(kv.Key, kv.Value)
			donorStore.Remove(kv.Key)
			moved++
		}
	}

	if moved > 0 {
		lb.logger.Debug("remap on insert",
			zap.Uint32("inserted_server_id", uint32(insertedID)),
			zap.Uint32("donor_server_id", uint32(donor.ID)),
			zap.Int("keys_moved", moved))
	}
	lb.metrics.IncKeysRemapped("insert", moved)
}

// remapOnRemove runs before the tag at position p is removed. It walks that
// tag's own server store and migrates every key in the arc the tag owned —
// (prevHash, thisHash], or for the tag at slot 0 [0, thisHash] plus the
// wrap-around arc above the last tag — to the tag's successor, which
// inherits that arc once the tag is gone.
//
// p must be the position of the tag about to be removed; the ring must
// still contain it when this runs, so the successor is read with the tag
// still present (SPEC_FULL.md §4.5).
func (lb *LoadBalancer) remapOnRemove(p int) {
	tag := lb.ring.At(p)
	successor := lb.ring.Next(p)
	if successor.ID == tag.ID {
		// Another replica of the same (still-registered) server succeeds
		// this one: the arc stays within the same server, nothing to move.
		return
	}

	prevHash := lb.ring.PrevHash(p)
	thisHash := tag.Hash
	lastHash := lb.ring.At(lb.ring.Len() - 1).Hash

	dyingStore := lb.servers[tag.ID]
	successorStore := lb.servers[successor.ID]
	moved := 0
	for _, kv := range dyingStore.Iterate() {
		h := ring.HashKey(kv.Key)
		owned := h > prevHash && h <= thisHash
		if p == 0 {
			// The first tag also owns the wrap-around arc above the last tag.
			owned = h <= thisHash || h > lastHash
		}
		if owned {
			successorStore.Put(kv.Key, kv.Value)
			dyingStore.Remove(kv.Key)
			moved++
		}
	}

	if moved > 0 {
		lb.logger.Debug("remap on remove",
			zap.Uint32("removed_server_id", uint32(tag.ID)),
			zap.Uint32("successor_server_id", uint32(successor.ID)),
			zap.Int("keys_moved", moved))
	}
	lb.metrics.IncKeysRemapped("remove", moved)
}
