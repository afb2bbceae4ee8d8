package hashmap

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMapGrowthScenario walks the canonical growth story: a fresh map has
// a single bucket, and the table doubles as soon as the entry count
// exceeds the bucket count.
func TestMapGrowthScenario(t *testing.T) {
	m := New[int, string]()
	require.Equal(t, 1, m.Stats().Buckets)

	m.Insert(1, "a")
	require.Equal(t, 1, m.Stats().Buckets)

	m.Insert(2, "b")
	require.GreaterOrEqual(t, m.Stats().Buckets, 2)

	m.Insert(3, "c")
	require.LessOrEqual(t, m.Size(), m.Stats().Buckets)

	v, err := m.At(2)
	require.NoError(t, err)
	require.Equal(t, "b", v)

	m.Delete(2)
	require.Nil(t, m.Find(2))
	require.Equal(t, 2, m.Size())
}

// TestMapDuplicateCollapse pins the bulk-construction policy: the first
// occurrence of a duplicate key wins, consistent with Insert.
func TestMapDuplicateCollapse(t *testing.T) {
	m := NewFromEntries([]Entry[int, string]{
		{Key: 1, Value: "x"},
		{Key: 1, Value: "y"},
	})
	require.Equal(t, 1, m.Size())
	v, err := m.At(1)
	require.NoError(t, err)
	require.Equal(t, "x", v)

	c := Collect(func(yield func(int, string) bool) {
		yield(1, "x")
		yield(1, "y")
	})
	require.Equal(t, 1, c.Size())
	require.Equal(t, "x", *c.Ref(1))
}

// TestMapModel drives a map and a reference map[int]int through the same
// random operation sequence and checks they agree after every step.
func TestMapModel(t *testing.T) {
	const steps = 10000
	const keySpace = 200

	m := New[int, int]()
	ref := make(map[int]int)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < steps; i++ {
		key := rng.IntN(keySpace)
		switch rng.IntN(5) {
		case 0, 1:
			_, existed := ref[key]
			inserted := m.Insert(key, i)
			require.Equal(t, !existed, inserted)
			if !existed {
				ref[key] = i
			}
		case 2:
			p := m.Ref(key)
			if _, exists := ref[key]; !exists {
				ref[key] = 0
			}
			require.Equal(t, ref[key], *p)
			*p = i
			ref[key] = i
		case 3:
			delete(ref, key)
			m.Delete(key)
		case 4:
			v, ok := m.Load(key)
			want, exists := ref[key]
			require.Equal(t, exists, ok)
			if exists {
				require.Equal(t, want, v)
			}
		}
		require.Equal(t, len(ref), m.Size())
		require.LessOrEqual(t, m.Size(), m.Stats().Buckets)
	}
	require.Equal(t, ref, m.ToMap())
}

// TestMapRoundTrip checks that every key not erased still finds its
// original value after heavy unrelated churn.
func TestMapRoundTrip(t *testing.T) {
	const numEntries = 1000
	m := New[string, int]()
	for i := 0; i < numEntries; i++ {
		m.Insert(strconv.Itoa(i), i)
	}
	for i := numEntries; i < 2*numEntries; i++ {
		m.Insert(strconv.Itoa(i), i)
		m.Delete(strconv.Itoa(i))
	}
	for i := 0; i < numEntries; i++ {
		e := m.Find(strconv.Itoa(i))
		require.NotNil(t, e)
		require.Equal(t, strconv.Itoa(i), e.Key)
		require.Equal(t, i, e.Value)
	}
	require.Equal(t, numEntries, m.Size())
}

func TestMapEraseThenFind(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	m.Delete("a")
	require.Nil(t, m.Find("a"))
	require.Equal(t, 1, m.Size())

	// Erasing a missing key is a silent no-op.
	m.Delete("a")
	require.Equal(t, 1, m.Size())

	v, ok := m.Load("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestMapClearKeepsBuckets(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 1000; i++ {
		m.Insert(i, i)
	}
	buckets := m.Stats().Buckets
	require.Greater(t, buckets, 1)

	m.Clear()
	require.True(t, m.IsZero())
	require.Equal(t, 0, m.Size())
	require.Equal(t, buckets, m.Stats().Buckets)

	// Refilling to the previous size never grows the table again.
	for i := 0; i < 1000; i++ {
		m.Insert(i, i)
	}
	require.Equal(t, buckets, m.Stats().Buckets)
}
