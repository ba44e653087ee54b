package seq

// MapIter applies a transform to each upstream element as it is reached.
type MapIter[T, U any] struct {
	cursor[U]
	src    Iterator[T]
	fn     func(T) U
	closed bool
}

// Map returns the elements of src transformed by fn. fn must be pure: Count
// and TryNonEnumeratedCount do not call it, and TryLast calls it once.
func Map[T, U any](src Iterator[T], fn func(T) U) *MapIter[T, U] {
	return &MapIter[T, U]{src: src, fn: fn}
}

// MoveNext implements Iterator.
func (m *MapIter[T, U]) MoveNext() bool {
	if m.isDone() {
		return false
	}
	if m.src.MoveNext() {
		return m.set(m.fn(m.src.Current()))
	}
	return m.done()
}

// Reset implements Iterator.
func (m *MapIter[T, U]) Reset() {
	m.src.Reset()
	m.rewind()
}

// Close implements Iterator.
func (m *MapIter[T, U]) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.done()
	return m.src.Close()
}

// Clone implements Iterator.
func (m *MapIter[T, U]) Clone() Iterator[U] { return Map(m.src.Clone(), m.fn) }

// TryNonEnumeratedCount implements Iterator.
func (m *MapIter[T, U]) TryNonEnumeratedCount() (int, bool) {
	if m.isDone() {
		return 0, true
	}
	return m.src.TryNonEnumeratedCount()
}

// Count implements Iterator.
func (m *MapIter[T, U]) Count() int {
	if m.isDone() {
		return 0
	}
	n := m.src.Count()
	m.done()
	return n
}

// TryLast implements Iterator.
func (m *MapIter[T, U]) TryLast() (U, bool) {
	if m.isDone() {
		var zero U
		return zero, false
	}
	v, ok := m.src.TryLast()
	m.done()
	if !ok {
		var zero U
		return zero, false
	}
	return m.fn(v), true
}

// CopyTo implements Iterator. Over contiguous memory the transform reads the
// buffer directly.
func (m *MapIter[T, U]) CopyTo(dst []U) int {
	if len(dst) == 0 || m.isDone() {
		return 0
	}
	c, ok := asContiguous(m.src)
	if !ok {
		return copyToNaive[U](m, dst)
	}
	rest := c.rest()
	n := min(len(rest), len(dst))
	for i, v := range rest[:n] {
		dst[i] = m.fn(v)
	}
	c.settle(n, len(dst))
	if n == len(dst) {
		m.set(dst[n-1])
	} else {
		m.done()
	}
	return n
}

// TryTakeRange implements Iterator by narrowing the upstream.
func (m *MapIter[T, U]) TryTakeRange(r Range) (Iterator[U], bool) {
	if m.st != unstarted {
		return nil, false
	}
	sub, ok := m.src.TryTakeRange(r)
	if !ok {
		return nil, false
	}
	return Map(sub, m.fn), true
}

func (m *MapIter[T, U]) appendTo(b *Builder[U]) {
	if m.isDone() {
		return
	}
	c, ok := asContiguous(m.src)
	if !ok {
		appendNaive[U](m, b)
		return
	}
	rest := c.rest()
	b.Grow(len(rest))
	for _, v := range rest {
		b.Add(m.fn(v))
	}
	c.exhaust()
	m.done()
}

// SizeHint implements SizeHinter.
func (m *MapIter[T, U]) SizeHint() int { return sizeHint(m.src) }

func (m *MapIter[T, U]) fastPath() bool {
	_, ok := asContiguous(m.src)
	return ok
}
