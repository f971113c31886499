package ring

// ServerID identifies a logical server. Ids are expected to be small,
// non-negative, and stable for the lifetime of the server they name.
type ServerID uint32

// Tag is one entry on the ring: the hash of a single virtual replica and the
// id of the server it belongs to. Every live server contributes exactly
// NumReplicas tags.
type Tag struct {
	Hash uint32
	ID   ServerID
}

// less reports whether a sorts before b under the ring's total order:
// ascending hash, ties broken by ascending id.
func less(a, b Tag) bool {
	if a.Hash != b.Hash {
		return a.Hash < b.Hash
	}
	return a.ID < b.ID
}
