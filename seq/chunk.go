package seq

import (
	"github.com/kbukum/seqkit/errors"
)

// ChunkIter groups upstream elements into consecutive slices of a fixed
// size; the last chunk may be shorter.
type ChunkIter[T any] struct {
	cursor[[]T]
	src    Iterator[T]
	size   int
	closed bool
}

// Chunk returns src grouped into slices of size elements. Over a contiguous
// source each chunk is a capacity-limited window into the source buffer and
// shares its read-only contract; otherwise chunks are freshly allocated.
func Chunk[T any](src Iterator[T], size int) (*ChunkIter[T], error) {
	if size <= 0 {
		return nil, errors.InvalidRange("chunk size must be positive").WithDetail("size", size)
	}
	return &ChunkIter[T]{src: src, size: size}, nil
}

// MoveNext implements Iterator.
func (ch *ChunkIter[T]) MoveNext() bool {
	if ch.isDone() {
		return false
	}
	if c, ok := asContiguous(ch.src); ok {
		rest := c.rest()
		if len(rest) == 0 {
			c.exhaust()
			return ch.done()
		}
		k := min(ch.size, len(rest))
		c.consume(k)
		return ch.set(rest[:k:k])
	}
	if n, ok := ch.src.TryNonEnumeratedCount(); ok {
		if n == 0 {
			return ch.done()
		}
		buf := make([]T, min(ch.size, n))
		return ch.set(buf[:ch.src.CopyTo(buf)])
	}
	var buf []T
	for len(buf) < ch.size && ch.src.MoveNext() {
		buf = append(buf, ch.src.Current())
	}
	if len(buf) == 0 {
		return ch.done()
	}
	return ch.set(buf)
}

// Reset implements Iterator.
func (ch *ChunkIter[T]) Reset() {
	ch.src.Reset()
	ch.rewind()
}

// Close implements Iterator.
func (ch *ChunkIter[T]) Close() error {
	if ch.closed {
		return nil
	}
	ch.closed = true
	ch.done()
	return ch.src.Close()
}

// Clone implements Iterator.
func (ch *ChunkIter[T]) Clone() Iterator[[]T] {
	return &ChunkIter[T]{src: ch.src.Clone(), size: ch.size}
}

// TryNonEnumeratedCount implements Iterator.
func (ch *ChunkIter[T]) TryNonEnumeratedCount() (int, bool) {
	if ch.isDone() {
		return 0, true
	}
	n, ok := ch.src.TryNonEnumeratedCount()
	if !ok {
		return 0, false
	}
	return (n + ch.size - 1) / ch.size, true
}

// Count implements Iterator.
func (ch *ChunkIter[T]) Count() int {
	if n, ok := ch.TryNonEnumeratedCount(); ok {
		ch.done()
		return n
	}
	n := ch.src.Count()
	ch.done()
	return (n + ch.size - 1) / ch.size
}

// TryLast implements Iterator.
func (ch *ChunkIter[T]) TryLast() ([]T, bool) {
	if ch.isDone() {
		return nil, false
	}
	c, ok := asContiguous(ch.src)
	if !ok {
		return tryLastNaive[[]T](ch)
	}
	rest := c.rest()
	c.exhaust()
	ch.done()
	if len(rest) == 0 {
		return nil, false
	}
	k := len(rest) % ch.size
	if k == 0 {
		k = ch.size
	}
	return rest[len(rest)-k:], true
}

// CopyTo implements Iterator.
func (ch *ChunkIter[T]) CopyTo(dst [][]T) int { return copyToNaive[[]T](ch, dst) }

// TryTakeRange implements Iterator.
func (ch *ChunkIter[T]) TryTakeRange(Range) (Iterator[[]T], bool) { return nil, false }

// SizeHint implements SizeHinter.
func (ch *ChunkIter[T]) SizeHint() int {
	return (sizeHint(ch.src) + ch.size - 1) / ch.size
}

func (ch *ChunkIter[T]) fastPath() bool {
	_, ok := asContiguous(ch.src)
	return ok
}
