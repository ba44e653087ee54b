package seq

import (
	"cmp"

	"github.com/kbukum/seqkit/errors"
)

// --- Naive fallbacks shared by every node without a specialisation ---

func countNaive[T any](it Iterator[T]) int {
	n := 0
	for it.MoveNext() {
		n++
	}
	return n
}

func tryLastNaive[T any](it Iterator[T]) (T, bool) {
	var last T
	found := false
	for it.MoveNext() {
		last = it.Current()
		found = true
	}
	return last, found
}

func copyToNaive[T any](it Iterator[T], dst []T) int {
	n := 0
	for n < len(dst) && it.MoveNext() {
		dst[n] = it.Current()
		n++
	}
	return n
}

func appendNaive[T any](it Iterator[T], b *Builder[T]) {
	for it.MoveNext() {
		b.Add(it.Current())
	}
}

// --- Terminal operations ---

// TryFirst advances it once and returns the element reached, if any.
func TryFirst[T any](it Iterator[T]) (T, bool) {
	record("First", it)
	if it.MoveNext() {
		return it.Current(), true
	}
	var zero T
	return zero, false
}

// First returns the first element or an EMPTY_SEQUENCE error.
func First[T any](it Iterator[T]) (T, error) {
	v, ok := TryFirst(it)
	if !ok {
		return v, errors.EmptySequence("First")
	}
	return v, nil
}

// FirstOrDefault returns the first element, or def when there is none.
func FirstOrDefault[T any](it Iterator[T], def T) T {
	if v, ok := TryFirst(it); ok {
		return v
	}
	return def
}

// TryLast consumes it and returns its final element, if any.
func TryLast[T any](it Iterator[T]) (T, bool) {
	record("Last", it)
	return it.TryLast()
}

// Last returns the final element or an EMPTY_SEQUENCE error.
func Last[T any](it Iterator[T]) (T, error) {
	v, ok := TryLast(it)
	if !ok {
		return v, errors.EmptySequence("Last")
	}
	return v, nil
}

// LastOrDefault returns the final element, or def when there is none.
func LastOrDefault[T any](it Iterator[T], def T) T {
	if v, ok := TryLast(it); ok {
		return v
	}
	return def
}

// Count consumes it and returns the number of remaining elements.
func Count[T any](it Iterator[T]) int {
	record("Count", it)
	return it.Count()
}

// TryNonEnumeratedCount returns the remaining count when it is known without
// enumeration.
func TryNonEnumeratedCount[T any](it Iterator[T]) (int, bool) {
	return it.TryNonEnumeratedCount()
}

// CopyTo copies up to len(dst) elements of it into dst and returns how many
// were copied.
func CopyTo[T any](it Iterator[T], dst []T) int {
	record("CopyTo", it)
	return it.CopyTo(dst)
}

// ElementAt advances to the element at index i of the remaining sequence.
// It fails with INDEX_OUT_OF_RANGE when the sequence is shorter.
func ElementAt[T any](it Iterator[T], i int) (T, error) {
	record("ElementAt", it)
	var zero T
	if i < 0 {
		n, _ := it.TryNonEnumeratedCount()
		return zero, errors.IndexOutOfRange(i, n)
	}
	if c, ok := asContiguous(it); ok {
		rest := c.rest()
		if i >= len(rest) {
			c.exhaust()
			return zero, errors.IndexOutOfRange(i, len(rest))
		}
		c.consume(i + 1)
		return rest[i], nil
	}
	n := 0
	for ; it.MoveNext(); n++ {
		if n == i {
			return it.Current(), nil
		}
	}
	return zero, errors.IndexOutOfRange(i, n)
}

// ToSlice consumes it into a new slice. The result is never nil.
func ToSlice[T any](it Iterator[T]) []T {
	if c, ok := asContiguous(it); ok {
		record("ToSlice", it)
		rest := c.rest()
		out := make([]T, len(rest))
		copy(out, rest)
		c.exhaust()
		return out
	}
	if n, ok := it.TryNonEnumeratedCount(); ok {
		record("ToSlice", it)
		out := make([]T, n)
		m := it.CopyTo(out)
		it.MoveNext()
		return out[:m]
	}
	record("ToSlice", it)
	var scratch [scratchLen]T
	b := NewBuilder(scratch[:])
	defer b.Dispose()
	b.Grow(sizeHint(it))
	b.AddIterator(it)
	return b.ToSlice()
}

// scratchLen sizes the stack scratch ToSlice hands to its Builder.
const scratchLen = 8

// ToList consumes it into a new mutable List.
func ToList[T any](it Iterator[T]) *List[T] {
	return NewList(ToSlice(it))
}

// ToSet consumes it into a set.
func ToSet[T comparable](it Iterator[T]) map[T]struct{} {
	record("ToSet", it)
	set := make(map[T]struct{}, sizeHint(it))
	if c, ok := asContiguous(it); ok {
		for _, v := range c.rest() {
			set[v] = struct{}{}
		}
		c.exhaust()
		return set
	}
	for it.MoveNext() {
		set[it.Current()] = struct{}{}
	}
	return set
}

// ToMap consumes it into a map keyed by key(v) with values val(v). When two
// elements share a key the later one wins.
func ToMap[T any, K comparable, V any](it Iterator[T], key func(T) K, val func(T) V) map[K]V {
	record("ToMap", it)
	m := make(map[K]V, sizeHint(it))
	if c, ok := asContiguous(it); ok {
		for _, v := range c.rest() {
			m[key(v)] = val(v)
		}
		c.exhaust()
		return m
	}
	for it.MoveNext() {
		v := it.Current()
		m[key(v)] = val(v)
	}
	return m
}

// Aggregate folds the sequence with fn, using the first element as the seed.
// It fails with EMPTY_SEQUENCE on an empty sequence.
func Aggregate[T any](it Iterator[T], fn func(acc, v T) T) (T, error) {
	record("Aggregate", it)
	if c, ok := asContiguous(it); ok {
		rest := c.rest()
		c.exhaust()
		if len(rest) == 0 {
			var zero T
			return zero, errors.EmptySequence("Aggregate")
		}
		acc := rest[0]
		for _, v := range rest[1:] {
			acc = fn(acc, v)
		}
		return acc, nil
	}
	if !it.MoveNext() {
		var zero T
		return zero, errors.EmptySequence("Aggregate")
	}
	acc := it.Current()
	for it.MoveNext() {
		acc = fn(acc, it.Current())
	}
	return acc, nil
}

// AggregateSeed folds the sequence with fn starting from seed.
func AggregateSeed[T, A any](it Iterator[T], seed A, fn func(acc A, v T) A) A {
	record("Aggregate", it)
	acc := seed
	if c, ok := asContiguous(it); ok {
		for _, v := range c.rest() {
			acc = fn(acc, v)
		}
		c.exhaust()
		return acc
	}
	for it.MoveNext() {
		acc = fn(acc, it.Current())
	}
	return acc
}

// Number is the constraint for Sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Sum adds up the sequence; an empty sequence sums to zero.
func Sum[T Number](it Iterator[T]) T {
	return AggregateSeed(it, T(0), func(acc, v T) T { return acc + v })
}

// Min returns the smallest element or an EMPTY_SEQUENCE error.
func Min[T cmp.Ordered](it Iterator[T]) (T, error) {
	v, err := Aggregate(it, func(acc, v T) T { return min(acc, v) })
	if err != nil {
		return v, errors.EmptySequence("Min")
	}
	return v, nil
}

// Max returns the largest element or an EMPTY_SEQUENCE error.
func Max[T cmp.Ordered](it Iterator[T]) (T, error) {
	v, err := Aggregate(it, func(acc, v T) T { return max(acc, v) })
	if err != nil {
		return v, errors.EmptySequence("Max")
	}
	return v, nil
}

// Any reports whether the sequence has at least one element. It advances it
// by at most one element.
func Any[T any](it Iterator[T]) bool {
	if n, ok := it.TryNonEnumeratedCount(); ok {
		return n > 0
	}
	return it.MoveNext()
}

// AnyFunc reports whether some element satisfies pred, stopping at the first.
func AnyFunc[T any](it Iterator[T], pred func(T) bool) bool {
	for it.MoveNext() {
		if pred(it.Current()) {
			return true
		}
	}
	return false
}

// All reports whether every element satisfies pred, stopping at the first
// that does not.
func All[T any](it Iterator[T], pred func(T) bool) bool {
	for it.MoveNext() {
		if !pred(it.Current()) {
			return false
		}
	}
	return true
}

// Contains reports whether v occurs in the sequence.
func Contains[T comparable](it Iterator[T], v T) bool {
	if c, ok := asContiguous(it); ok {
		rest := c.rest()
		for i, e := range rest {
			if e == v {
				c.consume(i + 1)
				return true
			}
		}
		c.exhaust()
		return false
	}
	return AnyFunc(it, func(e T) bool { return e == v })
}

// ForEach calls fn for each remaining element.
func ForEach[T any](it Iterator[T], fn func(T)) {
	for it.MoveNext() {
		fn(it.Current())
	}
}
