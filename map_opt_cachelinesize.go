//go:build !hashmap_opt_cachelinesize_32 && !hashmap_opt_cachelinesize_64 && !hashmap_opt_cachelinesize_128 && !hashmap_opt_cachelinesize_256

package hashmap

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize is used to size chain allocations.
// It's automatically calculated using the `golang.org/x/sys` package.
const CacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})

// entriesPerChainLine is the number of chain slots that fit in one cache
// line; fresh chain backing arrays are allocated in this granularity.
const entriesPerChainLine = int(CacheLineSize / unsafe.Sizeof(uintptr(0)))
