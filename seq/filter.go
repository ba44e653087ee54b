package seq

// FilterIter yields the upstream elements that satisfy a predicate.
type FilterIter[T any] struct {
	cursor[T]
	src    Iterator[T]
	pred   func(T) bool
	closed bool
}

// Filter returns the elements of src for which pred returns true.
func Filter[T any](src Iterator[T], pred func(T) bool) *FilterIter[T] {
	return &FilterIter[T]{src: src, pred: pred}
}

// MoveNext implements Iterator.
func (f *FilterIter[T]) MoveNext() bool {
	if f.isDone() {
		return false
	}
	for f.src.MoveNext() {
		if v := f.src.Current(); f.pred(v) {
			return f.set(v)
		}
	}
	return f.done()
}

// Reset implements Iterator.
func (f *FilterIter[T]) Reset() {
	f.src.Reset()
	f.rewind()
}

// Close implements Iterator.
func (f *FilterIter[T]) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.done()
	return f.src.Close()
}

// Clone implements Iterator.
func (f *FilterIter[T]) Clone() Iterator[T] { return Filter(f.src.Clone(), f.pred) }

// TryNonEnumeratedCount implements Iterator. A filter never knows its count
// before running the predicate.
func (f *FilterIter[T]) TryNonEnumeratedCount() (int, bool) {
	if f.isDone() {
		return 0, true
	}
	return 0, false
}

// Count implements Iterator.
func (f *FilterIter[T]) Count() int {
	if f.isDone() {
		return 0
	}
	c, ok := asContiguous(f.src)
	if !ok {
		return countNaive[T](f)
	}
	n := 0
	for _, v := range c.rest() {
		if f.pred(v) {
			n++
		}
	}
	c.exhaust()
	f.done()
	return n
}

// TryLast implements Iterator. Over contiguous memory it scans backward and
// stops at the first match.
func (f *FilterIter[T]) TryLast() (T, bool) {
	if f.isDone() {
		var zero T
		return zero, false
	}
	c, ok := asContiguous(f.src)
	if !ok {
		return tryLastNaive[T](f)
	}
	rest := c.rest()
	c.exhaust()
	f.done()
	for i := len(rest) - 1; i >= 0; i-- {
		if f.pred(rest[i]) {
			return rest[i], true
		}
	}
	var zero T
	return zero, false
}

// CopyTo implements Iterator.
func (f *FilterIter[T]) CopyTo(dst []T) int {
	if len(dst) == 0 || f.isDone() {
		return 0
	}
	c, ok := asContiguous(f.src)
	if !ok {
		return copyToNaive[T](f, dst)
	}
	n := 0
	for i, v := range c.rest() {
		if !f.pred(v) {
			continue
		}
		dst[n] = v
		n++
		if n == len(dst) {
			c.consume(i + 1)
			f.set(v)
			return n
		}
	}
	c.exhaust()
	f.done()
	return n
}

// TryTakeRange implements Iterator. Positions after filtering are unknown
// without running the predicate.
func (f *FilterIter[T]) TryTakeRange(Range) (Iterator[T], bool) { return nil, false }

func (f *FilterIter[T]) appendTo(b *Builder[T]) {
	if f.isDone() {
		return
	}
	c, ok := asContiguous(f.src)
	if !ok {
		appendNaive[T](f, b)
		return
	}
	for _, v := range c.rest() {
		if f.pred(v) {
			b.Add(v)
		}
	}
	c.exhaust()
	f.done()
}

// SizeHint guesses that half of the upstream elements pass.
func (f *FilterIter[T]) SizeHint() int { return sizeHint(f.src) / 2 }

func (f *FilterIter[T]) fastPath() bool {
	_, ok := asContiguous(f.src)
	return ok
}
