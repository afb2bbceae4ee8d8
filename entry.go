package hashmap

// Entry is a single key/value element of a Map.
//
// Entries are owned by the element store of exactly one Map. Once inserted,
// an entry never moves: a *Entry obtained from Find or RangeEntry keeps
// dereferencing to the same element across any number of later insertions
// and table growths, and is invalidated only by the erasure of that entry
// (Delete, Clear, or dropping the whole map).
//
// Notes:
//   - Never modify Key. The bucket an entry lives in is derived from the
//     key's hash at insertion time; changing the key breaks lookups.
//   - Value may be modified freely through the pointer.
type Entry[K comparable, V any] struct {
	Key   K
	Value V

	// hash is cached at insertion so that table growths only re-derive
	// the bucket index, never re-hash the key.
	hash       uint64
	prev, next *Entry[K, V]
}

// linkBefore inserts e into the element store immediately before at.
func (e *Entry[K, V]) linkBefore(at *Entry[K, V]) {
	e.prev = at.prev
	e.next = at
	e.prev.next = e
	at.prev = e
}

// unlink removes e from the element store. The links are cleared so that a
// stale reference to an erased entry cannot silently keep walking the list.
func (e *Entry[K, V]) unlink() {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}
