package hashmap

import (
	"fmt"
	"strings"
)

// MapStats is a snapshot of the internal layout of a Map.
type MapStats struct {
	// Buckets is the current length of the bucket table, i.e. the number
	// of chains.
	Buckets int
	// EmptyBuckets is the number of buckets whose chain holds no entries.
	EmptyBuckets int
	// Size is the number of entries stored in the map.
	Size int
	// MinChain is the minimum number of entries in a chain.
	MinChain int
	// MaxChain is the maximum number of entries in a chain.
	MaxChain int
	// TotalGrowths is the number of times the bucket table grew.
	TotalGrowths uint32
}

// Stats returns statistics for the Map. It is an O(buckets) walk, meant
// for diagnostics or debugging purposes.
func (m *Map[K, V]) Stats() *MapStats {
	stats := &MapStats{
		Buckets:      len(m.buckets),
		Size:         m.size,
		TotalGrowths: m.growths,
	}
	if len(m.buckets) == 0 {
		// Zero-value map that has not been touched yet; the first
		// mutation initializes a single bucket.
		stats.Buckets = 1
		stats.EmptyBuckets = 1
		return stats
	}
	stats.MinChain = m.size
	for _, chain := range m.buckets {
		if len(chain) == 0 {
			stats.EmptyBuckets++
		}
		if len(chain) < stats.MinChain {
			stats.MinChain = len(chain)
		}
		if len(chain) > stats.MaxChain {
			stats.MaxChain = len(chain)
		}
	}
	return stats
}

// ToString returns string representation of map stats.
func (s *MapStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("MapStats{\n")
	sb.WriteString(fmt.Sprintf("Buckets:      %d\n", s.Buckets))
	sb.WriteString(fmt.Sprintf("EmptyBuckets: %d\n", s.EmptyBuckets))
	sb.WriteString(fmt.Sprintf("Size:         %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("MinChain:     %d\n", s.MinChain))
	sb.WriteString(fmt.Sprintf("MaxChain:     %d\n", s.MaxChain))
	sb.WriteString(fmt.Sprintf("TotalGrowths: %d\n", s.TotalGrowths))
	sb.WriteString("}\n")
	return sb.String()
}
