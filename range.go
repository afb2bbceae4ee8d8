package hashmap

import (
	"fmt"
	"strings"
)

// RangeEntry iterates over all entries in element-store order (insertion
// order; growths do not reorder it).
//
// Notes:
//   - Never modify the Key of a yielded entry (see Entry).
//   - The entry passed to yield may be erased from inside yield; the walk
//     continues with its successor. Any other mutation during iteration
//     is outside the contract.
func (m *Map[K, V]) RangeEntry(yield func(e *Entry[K, V]) bool) {
	for e := m.root.next; e != nil && e != &m.root; {
		next := e.next
		if !yield(e) {
			return
		}
		e = next
	}
}

// All is the iterator version for iterating over all key/value pairs.
func (m *Map[K, V]) All() func(yield func(K, V) bool) {
	return m.Range
}

// Keys is the iterator version for iterating over all keys.
func (m *Map[K, V]) Keys() func(yield func(K) bool) {
	return m.RangeKeys
}

// Values is the iterator version for iterating over all values.
func (m *Map[K, V]) Values() func(yield func(V) bool) {
	return m.RangeValues
}

// Range iterates over all key/value pairs.
func (m *Map[K, V]) Range(yield func(key K, value V) bool) {
	m.RangeEntry(func(e *Entry[K, V]) bool {
		return yield(e.Key, e.Value)
	})
}

// RangeKeys to iterate over all keys
func (m *Map[K, V]) RangeKeys(yield func(key K) bool) {
	m.RangeEntry(func(e *Entry[K, V]) bool {
		return yield(e.Key)
	})
}

// RangeValues to iterate over all values
func (m *Map[K, V]) RangeValues(yield func(value V) bool) {
	m.RangeEntry(func(e *Entry[K, V]) bool {
		return yield(e.Value)
	})
}

// ToMap collects all entries into a map[K]V.
func (m *Map[K, V]) ToMap() map[K]V {
	a := make(map[K]V, m.Size())
	m.RangeEntry(func(e *Entry[K, V]) bool {
		a[e.Key] = e.Value
		return true
	})
	return a
}

// String implements the formatting output interface fmt.Stringer.
func (m *Map[K, V]) String() string {
	return strings.Replace(fmt.Sprint(m.ToMap()), "map[", "Map[", 1)
}
