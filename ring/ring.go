package ring

import "sort"

// defaultInitialCapacity mirrors the reference implementation's INIT_SIZE:
// an explicit starting allocation for the backing slice, grown by doubling
// rather than started from zero and left to grow organically.
const defaultInitialCapacity = 64

// Ring is the sorted sequence of replica tags that defines the
// consistent-hashing namespace. It has no notion of servers beyond their
// numeric id: placement, storage, and the remap protocol all live one layer
// up, in the loadbalancer package.
//
// A Ring is not safe for concurrent use; callers serialize access exactly as
// the rest of the system does.
type Ring struct {
	tags []Tag
}

// New returns an empty Ring with room for initialCapacity tags before its
// backing slice must grow. A non-positive initialCapacity falls back to
// defaultInitialCapacity.
func New(initialCapacity int) *Ring {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	return &Ring{tags: make([]Tag, 0, initialCapacity)}
}

// Len returns the number of tags currently on the ring.
func (r *Ring) Len() int {
	return len(r.tags)
}

// At returns the tag at position i. It panics if i is out of range, the same
// as a direct slice index would.
func (r *Ring) At(i int) Tag {
	return r.tags[i]
}

// LocateObject returns the id of the server responsible for hash h: the
// smallest tag (hash, id) with tag.Hash >= h, or the first tag if h exceeds
// every tag's hash (wrap-around).
//
// LocateObject panics if the ring is empty; callers must check Len() first.
// An empty ring has no well-defined owner for any hash; SPEC_FULL.md §4.2
// treats the call as a programmer error.
func (r *Ring) LocateObject(h uint32) ServerID {
	if len(r.tags) == 0 {
		panic("ring: LocateObject called on an empty ring")
	}
	i := sort.Search(len(r.tags), func(i int) bool {
		return r.tags[i].Hash >= h
	})
	if i == len(r.tags) {
		i = 0
	}
	return r.tags[i].ID
}

// LocateInsertSlot returns the index at which tag (h, id) must be inserted
// to keep the ring sorted. If an identical (h, id) tag is already present,
// it returns that tag's index; callers treat this as a duplicate insert and
// may no-op.
func (r *Ring) LocateInsertSlot(h uint32, id ServerID) int {
	want := Tag{Hash: h, ID: id}
	return sort.Search(len(r.tags), func(i int) bool {
		return !less(r.tags[i], want)
	})
}

// InsertAt inserts tag at position p, shifting tags[p:] right by one. The
// caller is responsible for supplying a p produced by LocateInsertSlot so
// the ring remains sorted.
func (r *Ring) InsertAt(p int, tag Tag) {
	r.tags = append(r.tags, Tag{})
	copy(r.tags[p+1:], r.tags[p:])
	r.tags[p] = tag
}

// RemoveAt removes the tag at position p, shifting tags[p+1:] left by one.
//
// RemoveAt on an empty ring is a programmer error: it can only happen if a
// caller holds a stale index into a ring that has already been drained, a
// bug in the ring's own bookkeeping rather than anything a client of the
// system could trigger. It panics rather than silently doing nothing.
func (r *Ring) RemoveAt(p int) {
	if len(r.tags) == 0 {
		panic("ring: RemoveAt called on an empty ring")
	}
	copy(r.tags[p:], r.tags[p+1:])
	r.tags = r.tags[:len(r.tags)-1]
}

// Next returns the tag immediately after position p, wrapping to index 0
// when p is the last slot. It is used by the remap protocol to find the
// donor (on insert) or successor (on remove) replica for a tag.
func (r *Ring) Next(p int) Tag {
	n := p + 1
	if n == len(r.tags) {
		n = 0
	}
	return r.tags[n]
}

// PrevHash returns the hash of the tag immediately preceding position p, or
// 0 if p is the first slot on the ring. It is used by remap-on-remove to
// compute the lower bound of the arc a dying replica owned.
func (r *Ring) PrevHash(p int) uint32 {
	if p == 0 {
		return 0
	}
	return r.tags[p-1].Hash
}
