package seq

import (
	"github.com/kbukum/seqkit/errors"
)

// View is a borrowed, read-only window over a caller-owned buffer. It is
// what the contiguous fast paths operate on. The buffer must not be modified
// while views over it are in use.
type View[T any] struct {
	items []T
}

// ViewOf returns a view over buf.
func ViewOf[T any](buf []T) View[T] {
	return View[T]{items: buf[:len(buf):len(buf)]}
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return len(v.items) }

// At returns the element at index i.
func (v View[T]) At(i int) (T, error) {
	if i < 0 || i >= len(v.items) {
		var zero T
		return zero, errors.IndexOutOfRange(i, len(v.items))
	}
	return v.items[i], nil
}

// Slice narrows the view to r in O(1).
func (v View[T]) Slice(r Range) (View[T], error) {
	start, end, err := r.Resolve(len(v.items))
	if err != nil {
		return View[T]{}, err
	}
	return View[T]{items: v.items[start:end:end]}, nil
}

// Items exposes the underlying elements. Callers must treat the slice as
// read-only.
func (v View[T]) Items() []T { return v.items }

// CopyTo copies the view into dst and returns the number of elements copied.
func (v View[T]) CopyTo(dst []T) int { return copy(dst, v.items) }

// ToList returns a read-only list backed by the view, without copying.
func (v View[T]) ToList() *List[T] {
	return &List[T]{items: v.items, readOnly: true}
}

// Iter returns a contiguous source over the view.
func (v View[T]) Iter() *Contiguous[T] { return Of(v.items) }
