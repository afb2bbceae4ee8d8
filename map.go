package hashmap

import (
	"errors"
	"hash/maphash"
	"math/bits"
)

// ErrNotFound is reported by At for keys that are not in the map.
var ErrNotFound = errors.New("hashmap: key not found")

// growthFactor is the table growth multiplier. Whenever the number of
// entries exceeds the number of buckets, the bucket count is multiplied
// by this factor and every chain is rebuilt.
const growthFactor = 2

// HashFunc hashes a key under the given seed. Implementations must be
// consistent with key equality: two equal keys must produce equal hashes
// under the same seed. The map does not verify this; a hash function that
// violates it produces silently incorrect lookups.
type HashFunc[K comparable] func(seed maphash.Seed, key K) uint64

// Map is a hash map with unique keys, built on separate chaining with
// dynamic table expansion.
//
// Internally a Map is split into two cooperating structures:
//
//   - the element store, an intrusive doubly-linked list of Entry nodes
//     that exclusively owns all key/value pairs, and
//   - the bucket table, a power-of-two sized array of chains holding
//     non-owning *Entry references, indexed by hash.
//
// Growing the table rebuilds chains only; entries are never moved or
// recreated. This is what makes *Entry references and in-progress
// iteration stable across any insertion, including ones that trigger a
// growth (see Entry). The table doubles whenever the entry count exceeds
// the bucket count, which keeps the load factor at most 1 and all
// operations O(1) on average. The table never shrinks; Clear empties the
// map but keeps the current bucket count.
//
// Key features:
//   - Zero-value usability: the zero Map is a valid empty map.
//   - Pluggable hash function, stored by value and preserved by Clone.
//   - Stable references: Find returns a *Entry that survives growths.
//   - Insertion-order iteration; insert and delete do not disturb the
//     relative order of untouched entries.
//
// A Map is not safe for concurrent use and performs no internal
// synchronization; callers sharing one across goroutines must provide
// their own. A Map must not be copied after first use.
type Map[K comparable, V any] struct {
	seed    maphash.Seed
	hash    HashFunc[K]
	buckets [][]*Entry[K, V]
	// root is the element-store sentinel; root.next is the oldest entry,
	// root.prev the newest.
	root    Entry[K, V]
	size    int
	growths uint32
}

// New creates an empty Map.
//
// Parameters:
//   - WithPresize option for initial bucket count
func New[K comparable, V any](options ...func(*Config)) *Map[K, V] {
	return NewWithHasher[K, V](nil, options...)
}

// NewWithHasher creates an empty Map using a custom hash function.
// A nil hash selects the built-in hasher (maphash.Comparable).
func NewWithHasher[K comparable, V any](
	hash HashFunc[K],
	options ...func(*Config),
) *Map[K, V] {
	m := &Map[K, V]{}
	m.Init(hash, options...)
	return m
}

// NewFromEntries creates a Map holding the given entries. The bucket table
// is sized proportionally to the input in one pass, so no intermediate
// growths occur. Duplicate keys in the input collapse to the FIRST
// occurrence, consistent with Insert.
func NewFromEntries[K comparable, V any](
	entries []Entry[K, V],
	options ...func(*Config),
) *Map[K, V] {
	options = append(options, WithPresize(growthFactor*len(entries)))
	m := New[K, V](options...)
	for i := range entries {
		m.Insert(entries[i].Key, entries[i].Value)
	}
	return m
}

// Collect creates a Map from a (key, value) iterator sequence, in the
// shape of iter.Seq2. Duplicate keys collapse to the first occurrence.
func Collect[K comparable, V any](
	seq func(yield func(K, V) bool),
	options ...func(*Config),
) *Map[K, V] {
	m := New[K, V](options...)
	seq(func(key K, value V) bool {
		m.Insert(key, value)
		return true
	})
	return m
}

// Config defines configurable Map options.
type Config struct {
	sizeHint int
}

// WithPresize configures a new Map with a bucket table large enough to
// hold sizeHint entries without growing. The count is rounded up to a
// power of two. If sizeHint is zero or negative, the value is ignored.
func WithPresize(sizeHint int) func(*Config) {
	return func(c *Config) {
		c.sizeHint = sizeHint
	}
}

// Init configures the map in place. A nil hash selects the built-in
// hasher. Init exists so that embedded and zero-value maps can be
// configured without New; it must only be called before the map is used.
func (m *Map[K, V]) Init(hash HashFunc[K], options ...func(*Config)) {
	var c Config
	for _, o := range options {
		o(&c)
	}
	if hash == nil {
		hash = maphash.Comparable[K]
	}
	m.seed = maphash.MakeSeed()
	m.hash = hash
	m.buckets = make([][]*Entry[K, V], tableLenFor(c.sizeHint))
	m.root.next = &m.root
	m.root.prev = &m.root
	m.size = 0
	m.growths = 0
}

func (m *Map[K, V]) initSlow() {
	if m.buckets == nil {
		m.Init(nil)
	}
}

// tableLenFor computes a bucket count for the given size hint.
// The result is a power of two and never less than 1.
func tableLenFor(sizeHint int) int {
	if sizeHint <= 1 {
		return 1
	}
	return nextPowOf2(sizeHint)
}

func nextPowOf2(n int) int {
	if n <= 0 {
		return 1
	}
	return 1 << (bits.UintSize - bits.LeadingZeros(uint(n-1)))
}

// Size returns the number of entries in the map. O(1).
func (m *Map[K, V]) Size() int {
	return m.size
}

// IsZero reports whether the map holds no entries.
func (m *Map[K, V]) IsZero() bool {
	return m.size == 0
}

// Hasher returns the hash function the map was built with.
func (m *Map[K, V]) Hasher() HashFunc[K] {
	if m.hash == nil {
		return maphash.Comparable[K]
	}
	return m.hash
}

// findEntry scans the chain for key and returns the matching entry (nil if
// none) along with the key's full hash. The map must be initialized.
func (m *Map[K, V]) findEntry(key K) (*Entry[K, V], uint64) {
	hash := m.hash(m.seed, key)
	for _, e := range m.buckets[hash&uint64(len(m.buckets)-1)] {
		if e.Key == key {
			return e, hash
		}
	}
	return nil, hash
}

// Find returns the entry for key, or nil if the key is absent. The
// returned pointer is a stable reference: it stays valid across later
// insertions and table growths, until the entry itself is erased.
// Find never modifies the map.
func (m *Map[K, V]) Find(key K) *Entry[K, V] {
	if m.buckets == nil {
		return nil
	}
	e, _ := m.findEntry(key)
	return e
}

// Load returns the value stored for key.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	if e := m.Find(key); e != nil {
		return e.Value, true
	}
	return
}

// Has reports whether key is in the map.
func (m *Map[K, V]) Has(key K) bool {
	return m.Find(key) != nil
}

// At returns the value stored for key, or ErrNotFound if the key is
// absent. Unlike Ref it never inserts.
func (m *Map[K, V]) At(key K) (V, error) {
	if e := m.Find(key); e != nil {
		return e.Value, nil
	}
	var zero V
	return zero, ErrNotFound
}

// Ref returns a pointer to the value stored for key. If the key is
// absent, a zero value is inserted for it first.
//
// This is the only read-shaped operation with an insertion side effect:
// callers that want a pure lookup must use Find, Load or At instead. The
// returned pointer stays valid until the entry is erased.
func (m *Map[K, V]) Ref(key K) *V {
	m.initSlow()
	e, hash := m.findEntry(key)
	if e == nil {
		e = &Entry[K, V]{Key: key, hash: hash}
		m.insertEntry(e)
	}
	return &e.Value
}

// Insert adds (key, value) to the map and reports whether it did. If the
// key already exists the call is a no-op and the stored value is left
// untouched (first-insert-wins; it does not overwrite).
func (m *Map[K, V]) Insert(key K, value V) bool {
	m.initSlow()
	e, hash := m.findEntry(key)
	if e != nil {
		return false
	}
	m.insertEntry(&Entry[K, V]{Key: key, Value: value, hash: hash})
	return true
}

// insertEntry appends e to the element store, adds its chain reference and
// grows the table if the load factor exceeded 1. The key must not already
// be present and e.hash must be set.
func (m *Map[K, V]) insertEntry(e *Entry[K, V]) {
	e.linkBefore(&m.root)
	idx := e.hash & uint64(len(m.buckets)-1)
	m.buckets[idx] = appendChain(m.buckets[idx], e)
	m.size++
	if m.size > len(m.buckets) {
		m.rehash(growthFactor * len(m.buckets))
	}
}

// rehash rebuilds every chain for a table of tableLen buckets. Only chain
// membership changes; entries stay where they are, so references and the
// element-store order both survive.
func (m *Map[K, V]) rehash(tableLen int) {
	buckets := make([][]*Entry[K, V], tableLen)
	mask := uint64(tableLen - 1)
	for e := m.root.next; e != &m.root; e = e.next {
		idx := e.hash & mask
		buckets[idx] = appendChain(buckets[idx], e)
	}
	m.buckets = buckets
	m.growths++
}

// appendChain adds a reference to a chain, allocating fresh chains a cache
// line at a time.
func appendChain[K comparable, V any](
	chain []*Entry[K, V],
	e *Entry[K, V],
) []*Entry[K, V] {
	if chain == nil {
		chain = make([]*Entry[K, V], 0, entriesPerChainLine)
	}
	return append(chain, e)
}

// Delete erases key from the map. If the key is absent nothing happens.
// The table never shrinks on deletion; the memory is kept to avoid rehash
// churn on later insertions.
func (m *Map[K, V]) Delete(key K) {
	m.LoadAndDelete(key)
}

// LoadAndDelete erases key from the map, returning the value that was
// stored, if any.
func (m *Map[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	if m.buckets == nil {
		return
	}
	e, hash := m.findEntry(key)
	if e == nil {
		return
	}
	idx := hash & uint64(len(m.buckets)-1)
	chain := m.buckets[idx]
	for i := range chain {
		if chain[i] == e {
			// Chains are unordered, so the reference is removed by
			// swapping in the last one.
			last := len(chain) - 1
			chain[i] = chain[last]
			chain[last] = nil
			m.buckets[idx] = chain[:last]
			break
		}
	}
	e.unlink()
	m.size--
	return e.Value, true
}

// Clear erases every entry while keeping the current bucket count, so a
// reused map does not pay to grow from a single bucket again.
func (m *Map[K, V]) Clear() {
	if m.buckets == nil {
		return
	}
	for i := range m.buckets {
		m.buckets[i] = nil
	}
	m.root.next = &m.root
	m.root.prev = &m.root
	m.size = 0
}

// FromMap inserts all pairs of source into the map. Keys already present
// keep their stored value, like Insert.
func (m *Map[K, V]) FromMap(source map[K]V) {
	for k, v := range source {
		m.Insert(k, v)
	}
}

// Clone returns a deep copy of the map: same hash function and seed, fully
// independent element store and bucket table. The clone's table is sized
// for the current entry count in a single pass.
func (m *Map[K, V]) Clone() *Map[K, V] {
	clone := &Map[K, V]{}
	if m.buckets == nil {
		return clone
	}
	clone.seed = m.seed
	clone.hash = m.hash
	clone.buckets = make([][]*Entry[K, V], tableLenFor(growthFactor*m.size))
	clone.root.next = &clone.root
	clone.root.prev = &clone.root
	mask := uint64(len(clone.buckets) - 1)
	for e := m.root.next; e != &m.root; e = e.next {
		ne := &Entry[K, V]{Key: e.Key, Value: e.Value, hash: e.hash}
		ne.linkBefore(&clone.root)
		idx := ne.hash & mask
		clone.buckets[idx] = appendChain(clone.buckets[idx], ne)
	}
	clone.size = m.size
	return clone
}
