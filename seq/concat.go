package seq

// ConcatIter yields every element of left followed by every element of right.
type ConcatIter[T any] struct {
	cursor[T]
	left, right Iterator[T]
	onRight     bool
	closed      bool
}

// Concat returns left followed by right.
func Concat[T any](left, right Iterator[T]) *ConcatIter[T] {
	return &ConcatIter[T]{left: left, right: right}
}

// Append returns src followed by v.
func Append[T any](src Iterator[T], v T) *ConcatIter[T] {
	return Concat[T](src, Single(v))
}

// Prepend returns v followed by src.
func Prepend[T any](v T, src Iterator[T]) *ConcatIter[T] {
	return Concat[T](Single(v), src)
}

// ConcatAll chains its in order. With no arguments it returns an empty
// source.
func ConcatAll[T any](its ...Iterator[T]) Iterator[T] {
	switch len(its) {
	case 0:
		return Empty[T]()
	case 1:
		return its[0]
	}
	var out Iterator[T] = Concat(its[0], its[1])
	for _, it := range its[2:] {
		out = Concat(out, it)
	}
	return out
}

// MoveNext implements Iterator.
func (c *ConcatIter[T]) MoveNext() bool {
	if c.isDone() {
		return false
	}
	if !c.onRight {
		if c.left.MoveNext() {
			return c.set(c.left.Current())
		}
		c.onRight = true
	}
	if c.right.MoveNext() {
		return c.set(c.right.Current())
	}
	return c.done()
}

// Reset implements Iterator.
func (c *ConcatIter[T]) Reset() {
	c.left.Reset()
	c.right.Reset()
	c.onRight = false
	c.rewind()
}

// Close implements Iterator.
func (c *ConcatIter[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.done()
	return closeAll(c.left, c.right)
}

// Clone implements Iterator.
func (c *ConcatIter[T]) Clone() Iterator[T] { return Concat(c.left.Clone(), c.right.Clone()) }

// TryNonEnumeratedCount implements Iterator.
func (c *ConcatIter[T]) TryNonEnumeratedCount() (int, bool) {
	if c.isDone() {
		return 0, true
	}
	r, ok := c.right.TryNonEnumeratedCount()
	if !ok || c.onRight {
		return r, ok
	}
	l, ok := c.left.TryNonEnumeratedCount()
	if !ok {
		return 0, false
	}
	return l + r, true
}

// Count implements Iterator.
func (c *ConcatIter[T]) Count() int {
	if c.isDone() {
		return 0
	}
	n := 0
	if !c.onRight {
		n += c.left.Count()
		c.onRight = true
	}
	n += c.right.Count()
	c.done()
	return n
}

// TryLast implements Iterator.
func (c *ConcatIter[T]) TryLast() (T, bool) {
	if c.isDone() {
		var zero T
		return zero, false
	}
	v, ok := c.right.TryLast()
	if !ok && !c.onRight {
		v, ok = c.left.TryLast()
	}
	c.onRight = true
	c.done()
	return v, ok
}

// CopyTo implements Iterator. When left knows its count, each side copies
// its own part with its own specialisation.
func (c *ConcatIter[T]) CopyTo(dst []T) int {
	if len(dst) == 0 || c.isDone() {
		return 0
	}
	n := 0
	if !c.onRight {
		lc, ok := c.left.TryNonEnumeratedCount()
		if !ok {
			return copyToNaive[T](c, dst)
		}
		n = c.left.CopyTo(dst[:min(lc, len(dst))])
		if n == len(dst) {
			c.set(dst[n-1])
			return n
		}
		c.onRight = true
	}
	n += c.right.CopyTo(dst[n:])
	if n == len(dst) {
		c.set(dst[n-1])
	} else {
		c.done()
	}
	return n
}

// TryTakeRange implements Iterator.
func (c *ConcatIter[T]) TryTakeRange(Range) (Iterator[T], bool) { return nil, false }

func (c *ConcatIter[T]) appendTo(b *Builder[T]) {
	if c.isDone() {
		return
	}
	if !c.onRight {
		b.AddIterator(c.left)
		c.onRight = true
	}
	b.AddIterator(c.right)
	c.done()
}

// SizeHint implements SizeHinter.
func (c *ConcatIter[T]) SizeHint() int {
	if c.onRight {
		return sizeHint(c.right)
	}
	return sizeHint(c.left) + sizeHint(c.right)
}

func (c *ConcatIter[T]) fastPath() bool {
	return isFast(c.left) && isFast(c.right)
}
