package seq

// OfTypeIter yields the upstream elements whose dynamic type is U.
type OfTypeIter[T, U any] struct {
	cursor[U]
	src    Iterator[T]
	closed bool
}

// OfType keeps the elements of src that hold a U, converted to U. When U is
// an interface type an element matches if it implements U.
//
//	shapes := seq.OfType[Circle](seq.Of(all))
func OfType[U, T any](src Iterator[T]) *OfTypeIter[T, U] {
	return &OfTypeIter[T, U]{src: src}
}

func matchType[T, U any](v T) (U, bool) {
	u, ok := any(v).(U)
	return u, ok
}

// MoveNext implements Iterator.
func (o *OfTypeIter[T, U]) MoveNext() bool {
	if o.isDone() {
		return false
	}
	for o.src.MoveNext() {
		if u, ok := matchType[T, U](o.src.Current()); ok {
			return o.set(u)
		}
	}
	return o.done()
}

// Reset implements Iterator.
func (o *OfTypeIter[T, U]) Reset() {
	o.src.Reset()
	o.rewind()
}

// Close implements Iterator.
func (o *OfTypeIter[T, U]) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	o.done()
	return o.src.Close()
}

// Clone implements Iterator.
func (o *OfTypeIter[T, U]) Clone() Iterator[U] { return OfType[U](o.src.Clone()) }

// TryNonEnumeratedCount implements Iterator.
func (o *OfTypeIter[T, U]) TryNonEnumeratedCount() (int, bool) {
	if o.isDone() {
		return 0, true
	}
	return 0, false
}

// Count implements Iterator.
func (o *OfTypeIter[T, U]) Count() int {
	if o.isDone() {
		return 0
	}
	c, ok := asContiguous(o.src)
	if !ok {
		return countNaive[U](o)
	}
	n := 0
	for _, v := range c.rest() {
		if _, ok := matchType[T, U](v); ok {
			n++
		}
	}
	c.exhaust()
	o.done()
	return n
}

// TryLast implements Iterator. Over contiguous memory it scans backward for
// the last match.
func (o *OfTypeIter[T, U]) TryLast() (U, bool) {
	if o.isDone() {
		var zero U
		return zero, false
	}
	c, ok := asContiguous(o.src)
	if !ok {
		return tryLastNaive[U](o)
	}
	rest := c.rest()
	c.exhaust()
	o.done()
	for i := len(rest) - 1; i >= 0; i-- {
		if u, ok := matchType[T, U](rest[i]); ok {
			return u, true
		}
	}
	var zero U
	return zero, false
}

// CopyTo implements Iterator.
func (o *OfTypeIter[T, U]) CopyTo(dst []U) int {
	if len(dst) == 0 || o.isDone() {
		return 0
	}
	c, ok := asContiguous(o.src)
	if !ok {
		return copyToNaive[U](o, dst)
	}
	n := 0
	for i, v := range c.rest() {
		u, ok := matchType[T, U](v)
		if !ok {
			continue
		}
		dst[n] = u
		n++
		if n == len(dst) {
			c.consume(i + 1)
			o.set(u)
			return n
		}
	}
	c.exhaust()
	o.done()
	return n
}

// TryTakeRange implements Iterator.
func (o *OfTypeIter[T, U]) TryTakeRange(Range) (Iterator[U], bool) { return nil, false }

func (o *OfTypeIter[T, U]) appendTo(b *Builder[U]) {
	if o.isDone() {
		return
	}
	c, ok := asContiguous(o.src)
	if !ok {
		appendNaive[U](o, b)
		return
	}
	for _, v := range c.rest() {
		if u, ok := matchType[T, U](v); ok {
			b.Add(u)
		}
	}
	c.exhaust()
	o.done()
}

// SizeHint implements SizeHinter.
func (o *OfTypeIter[T, U]) SizeHint() int { return sizeHint(o.src) / 2 }

func (o *OfTypeIter[T, U]) fastPath() bool {
	_, ok := asContiguous(o.src)
	return ok
}
