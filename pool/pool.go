package pool

import (
	"math/bits"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/kbukum/seqkit/logger"
)

// numBuckets covers every power-of-two capacity an int length can need.
const numBuckets = bits.UintSize

// ArrayPool hands out slices whose length is a power of two and takes them
// back for reuse. It is safe for concurrent use.
type ArrayPool[T any] struct {
	buckets [numBuckets]sync.Pool
	rented  atomic.Int64
	misses  atomic.Int64
}

// New creates an empty pool.
func New[T any]() *ArrayPool[T] {
	return &ArrayPool[T]{}
}

// Rent returns a slice with len == cap, cap a power of two and at least
// max(minLen, the configured minimum segment length).
func (p *ArrayPool[T]) Rent(minLen int) []T {
	cfg := Current()
	if minLen < cfg.MinSegmentLen {
		minLen = cfg.MinSegmentLen
	}
	b := bucketFor(minLen)
	size := 1 << b
	p.rented.Add(1)

	if size <= cfg.MaxPooledLen {
		if v := p.buckets[b].Get(); v != nil {
			buf := *(v.(*[]T))
			return buf[:size]
		}
	}
	p.misses.Add(1)
	log := logger.Get(logger.ComponentPool).GetLogger()
	log.Trace().Int("size", size).Msg("pool miss, allocating segment")
	return make([]T, size)
}

// Return hands buf back to the pool. The contents are zeroed first so the
// pool never retains references to caller data. Slices whose capacity is
// not a power of two, or larger than the pooled limit, are dropped.
func (p *ArrayPool[T]) Return(buf []T) {
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 || c > Current().MaxPooledLen {
		return
	}
	buf = buf[:c]
	clear(buf)
	p.buckets[bits.TrailingZeros(uint(c))].Put(&buf)
}

// Stats reports how many slices were rented and how many of those had to be
// allocated.
func (p *ArrayPool[T]) Stats() (rented, misses int64) {
	return p.rented.Load(), p.misses.Load()
}

// bucketFor returns the exponent of the smallest power of two >= n.
func bucketFor(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// registry holds one shared pool per element type.
var registry sync.Map // reflect.Type -> *ArrayPool[T]

// For returns the shared pool for element type T.
func For[T any]() *ArrayPool[T] {
	key := reflect.TypeFor[T]()
	if v, ok := registry.Load(key); ok {
		return v.(*ArrayPool[T])
	}
	v, _ := registry.LoadOrStore(key, New[T]())
	return v.(*ArrayPool[T])
}

type statser interface {
	Stats() (rented, misses int64)
}

// Totals sums Stats over every shared pool handed out by For.
func Totals() (rented, misses int64) {
	registry.Range(func(_, v any) bool {
		r, m := v.(statser).Stats()
		rented += r
		misses += m
		return true
	})
	return rented, misses
}
