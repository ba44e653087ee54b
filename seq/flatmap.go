package seq

// FlatMapIter yields the elements of the inner iterator produced for each
// upstream element, in order.
//
// It is in one of three states: outer active with no inner iterator, inner
// active, or done. An inner iterator is closed as soon as it runs dry.
type FlatMapIter[T, U any] struct {
	cursor[U]
	src    Iterator[T]
	fn     func(T) Iterator[U]
	inner  Iterator[U]
	closed bool
}

// FlatMap returns the concatenation of fn(v) for every v in src.
func FlatMap[T, U any](src Iterator[T], fn func(T) Iterator[U]) *FlatMapIter[T, U] {
	return &FlatMapIter[T, U]{src: src, fn: fn}
}

// dropInner closes the active inner iterator. Its Close error is ignored:
// the inner iterator has already yielded everything it will.
func (f *FlatMapIter[T, U]) dropInner() {
	if f.inner != nil {
		_ = f.inner.Close()
		f.inner = nil
	}
}

// nextInner pulls the next outer element and opens its inner iterator.
func (f *FlatMapIter[T, U]) nextInner() bool {
	if !f.src.MoveNext() {
		return false
	}
	f.inner = f.fn(f.src.Current())
	return true
}

// MoveNext implements Iterator.
func (f *FlatMapIter[T, U]) MoveNext() bool {
	if f.isDone() {
		return false
	}
	for {
		if f.inner != nil {
			if f.inner.MoveNext() {
				return f.set(f.inner.Current())
			}
			f.dropInner()
		}
		if !f.nextInner() {
			return f.done()
		}
	}
}

// Reset implements Iterator.
func (f *FlatMapIter[T, U]) Reset() {
	f.dropInner()
	f.src.Reset()
	f.rewind()
}

// Close implements Iterator.
func (f *FlatMapIter[T, U]) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.done()
	var innerErr error
	if f.inner != nil {
		innerErr = f.inner.Close()
		f.inner = nil
	}
	if err := f.src.Close(); err != nil {
		return err
	}
	return innerErr
}

// Clone implements Iterator.
func (f *FlatMapIter[T, U]) Clone() Iterator[U] { return FlatMap(f.src.Clone(), f.fn) }

// TryNonEnumeratedCount implements Iterator.
func (f *FlatMapIter[T, U]) TryNonEnumeratedCount() (int, bool) {
	if f.isDone() {
		return 0, true
	}
	return 0, false
}

// Count implements Iterator. Each inner iterator counts itself.
func (f *FlatMapIter[T, U]) Count() int {
	if f.isDone() {
		return 0
	}
	n := 0
	for {
		if f.inner != nil {
			n += f.inner.Count()
			f.dropInner()
		}
		if !f.nextInner() {
			f.done()
			return n
		}
	}
}

// TryLast implements Iterator.
func (f *FlatMapIter[T, U]) TryLast() (U, bool) {
	var last U
	found := false
	if f.isDone() {
		return last, false
	}
	for {
		if f.inner != nil {
			if v, ok := f.inner.TryLast(); ok {
				last, found = v, true
			}
			f.dropInner()
		}
		if !f.nextInner() {
			f.done()
			return last, found
		}
	}
}

// CopyTo implements Iterator. Each inner iterator copies its own part.
func (f *FlatMapIter[T, U]) CopyTo(dst []U) int {
	if len(dst) == 0 || f.isDone() {
		return 0
	}
	n := 0
	for {
		if f.inner != nil {
			n += f.inner.CopyTo(dst[n:])
			if n == len(dst) {
				f.set(dst[n-1])
				return n
			}
			f.dropInner()
		}
		if !f.nextInner() {
			f.done()
			return n
		}
	}
}

// TryTakeRange implements Iterator.
func (f *FlatMapIter[T, U]) TryTakeRange(Range) (Iterator[U], bool) { return nil, false }

func (f *FlatMapIter[T, U]) appendTo(b *Builder[U]) {
	if f.isDone() {
		return
	}
	for {
		if f.inner != nil {
			b.AddIterator(f.inner)
			f.dropInner()
		}
		if !f.nextInner() {
			f.done()
			return
		}
	}
}

// SliceFlatMapIter is FlatMap for inner sequences that are slices. The inner
// cursor is a Contiguous held by value, so bulk operations copy each inner
// buffer whole instead of pulling element by element.
type SliceFlatMapIter[T, U any] struct {
	cursor[U]
	src    Iterator[T]
	fn     func(T) []U
	inner  Contiguous[U]
	active bool
	closed bool
}

// FlatMapSlice returns the concatenation of fn(v) for every v in src. The
// slices fn returns are borrowed and must not be modified during iteration.
func FlatMapSlice[T, U any](src Iterator[T], fn func(T) []U) *SliceFlatMapIter[T, U] {
	return &SliceFlatMapIter[T, U]{src: src, fn: fn}
}

func (f *SliceFlatMapIter[T, U]) dropInner() {
	f.inner.reset(nil)
	f.active = false
}

func (f *SliceFlatMapIter[T, U]) nextInner() bool {
	if !f.src.MoveNext() {
		return false
	}
	f.inner.reset(f.fn(f.src.Current()))
	f.active = true
	return true
}

// eachOuter calls fn with the slice of every remaining outer element and
// leaves the outer iterator exhausted.
func (f *SliceFlatMapIter[T, U]) eachOuter(fn func([]U)) {
	if c, ok := asContiguous(f.src); ok {
		for _, v := range c.rest() {
			fn(f.fn(v))
		}
		c.exhaust()
		return
	}
	for f.src.MoveNext() {
		fn(f.fn(f.src.Current()))
	}
}

// MoveNext implements Iterator.
func (f *SliceFlatMapIter[T, U]) MoveNext() bool {
	if f.isDone() {
		return false
	}
	for {
		if f.active {
			if f.inner.MoveNext() {
				return f.set(f.inner.Current())
			}
			f.dropInner()
		}
		if !f.nextInner() {
			return f.done()
		}
	}
}

// Reset implements Iterator.
func (f *SliceFlatMapIter[T, U]) Reset() {
	f.dropInner()
	f.src.Reset()
	f.rewind()
}

// Close implements Iterator.
func (f *SliceFlatMapIter[T, U]) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.dropInner()
	f.done()
	return f.src.Close()
}

// Clone implements Iterator.
func (f *SliceFlatMapIter[T, U]) Clone() Iterator[U] { return FlatMapSlice(f.src.Clone(), f.fn) }

// TryNonEnumeratedCount implements Iterator.
func (f *SliceFlatMapIter[T, U]) TryNonEnumeratedCount() (int, bool) {
	if f.isDone() {
		return 0, true
	}
	return 0, false
}

// Count implements Iterator by summing slice lengths.
func (f *SliceFlatMapIter[T, U]) Count() int {
	if f.isDone() {
		return 0
	}
	n := 0
	if f.active {
		n += len(f.inner.rest())
	}
	f.eachOuter(func(s []U) { n += len(s) })
	f.dropInner()
	f.done()
	return n
}

// TryLast implements Iterator. Over a contiguous outer buffer it scans
// backward for the last non-empty slice.
func (f *SliceFlatMapIter[T, U]) TryLast() (U, bool) {
	var last U
	found := false
	if f.isDone() {
		return last, false
	}
	if f.active {
		if r := f.inner.rest(); len(r) > 0 {
			last, found = r[len(r)-1], true
		}
	}
	if c, ok := asContiguous(f.src); ok {
		rest := c.rest()
		c.exhaust()
		for i := len(rest) - 1; i >= 0; i-- {
			if s := f.fn(rest[i]); len(s) > 0 {
				last, found = s[len(s)-1], true
				break
			}
		}
	} else {
		f.eachOuter(func(s []U) {
			if len(s) > 0 {
				last, found = s[len(s)-1], true
			}
		})
	}
	f.dropInner()
	f.done()
	return last, found
}

// CopyTo implements Iterator. Each inner slice is copied in bulk.
func (f *SliceFlatMapIter[T, U]) CopyTo(dst []U) int {
	if len(dst) == 0 || f.isDone() {
		return 0
	}
	n := 0
	for {
		if f.active {
			n += f.inner.CopyTo(dst[n:])
			if n == len(dst) {
				f.set(dst[n-1])
				return n
			}
			f.dropInner()
		}
		if !f.nextInner() {
			f.done()
			return n
		}
	}
}

// TryTakeRange implements Iterator.
func (f *SliceFlatMapIter[T, U]) TryTakeRange(Range) (Iterator[U], bool) { return nil, false }

func (f *SliceFlatMapIter[T, U]) appendTo(b *Builder[U]) {
	if f.isDone() {
		return
	}
	if f.active {
		b.AddRange(f.inner.rest())
	}
	f.eachOuter(b.AddRange)
	f.dropInner()
	f.done()
}

// fastPath reports whether the outer source is contiguous.
func (f *SliceFlatMapIter[T, U]) fastPath() bool {
	_, ok := asContiguous(f.src)
	return ok
}
