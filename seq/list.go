package seq

import (
	"github.com/kbukum/seqkit/errors"
)

// List is an indexable list produced by materializing a pipeline. A
// read-only list rejects structural and element mutation with
// UNSUPPORTED_OPERATION.
type List[T any] struct {
	items    []T
	readOnly bool
}

// NewList returns a mutable list that takes ownership of items.
func NewList[T any](items []T) *List[T] {
	if items == nil {
		items = []T{}
	}
	return &List[T]{items: items}
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// IsReadOnly reports whether the list rejects mutation.
func (l *List[T]) IsReadOnly() bool { return l.readOnly }

// AsReadOnly returns a read-only list sharing l's elements.
func (l *List[T]) AsReadOnly() *List[T] {
	return &List[T]{items: l.items, readOnly: true}
}

// Items exposes the elements. Callers must not modify the slice of a
// read-only list.
func (l *List[T]) Items() []T { return l.items }

// Iter returns a contiguous source over the list.
func (l *List[T]) Iter() *Contiguous[T] { return Of(l.items) }

// At returns the element at index i.
func (l *List[T]) At(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, errors.IndexOutOfRange(i, len(l.items))
	}
	return l.items[i], nil
}

// Set replaces the element at index i.
func (l *List[T]) Set(i int, v T) error {
	if l.readOnly {
		return errors.UnsupportedOperation("Set")
	}
	if i < 0 || i >= len(l.items) {
		return errors.IndexOutOfRange(i, len(l.items))
	}
	l.items[i] = v
	return nil
}

// Add appends v.
func (l *List[T]) Add(v T) error {
	if l.readOnly {
		return errors.UnsupportedOperation("Add")
	}
	l.items = append(l.items, v)
	return nil
}

// Insert places v at index i, shifting later elements up. i may equal Len.
func (l *List[T]) Insert(i int, v T) error {
	if l.readOnly {
		return errors.UnsupportedOperation("Insert")
	}
	if i < 0 || i > len(l.items) {
		return errors.IndexOutOfRange(i, len(l.items))
	}
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	return nil
}

// RemoveAt deletes the element at index i, shifting later elements down.
func (l *List[T]) RemoveAt(i int) error {
	if l.readOnly {
		return errors.UnsupportedOperation("RemoveAt")
	}
	if i < 0 || i >= len(l.items) {
		return errors.IndexOutOfRange(i, len(l.items))
	}
	copy(l.items[i:], l.items[i+1:])
	var zero T
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return nil
}
