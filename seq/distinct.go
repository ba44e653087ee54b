package seq

// DistinctIter yields the first upstream element for each key, in upstream
// order. The set of seen keys is created on the first MoveNext and dropped on
// exhaustion, Reset and Close.
type DistinctIter[T any, K comparable] struct {
	cursor[T]
	src    Iterator[T]
	key    func(T) K
	seen   map[K]struct{}
	closed bool
}

// Distinct removes repeated elements of src, keeping first occurrences.
func Distinct[T comparable](src Iterator[T]) *DistinctIter[T, T] {
	return DistinctBy(src, identity[T])
}

// DistinctBy removes elements of src whose key was already seen.
func DistinctBy[T any, K comparable](src Iterator[T], key func(T) K) *DistinctIter[T, K] {
	return &DistinctIter[T, K]{src: src, key: key}
}

func identity[T any](v T) T { return v }

// add records v's key and reports whether it was new.
func (d *DistinctIter[T, K]) add(v T) bool {
	if d.seen == nil {
		d.seen = make(map[K]struct{})
	}
	k := d.key(v)
	if _, dup := d.seen[k]; dup {
		return false
	}
	d.seen[k] = struct{}{}
	return true
}

func (d *DistinctIter[T, K]) finish() {
	d.seen = nil
	d.done()
}

// MoveNext implements Iterator.
func (d *DistinctIter[T, K]) MoveNext() bool {
	if d.isDone() {
		return false
	}
	for d.src.MoveNext() {
		if v := d.src.Current(); d.add(v) {
			return d.set(v)
		}
	}
	d.finish()
	return false
}

// Reset implements Iterator.
func (d *DistinctIter[T, K]) Reset() {
	d.src.Reset()
	d.seen = nil
	d.rewind()
}

// Close implements Iterator.
func (d *DistinctIter[T, K]) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.finish()
	return d.src.Close()
}

// Clone implements Iterator. The clone starts with an empty set.
func (d *DistinctIter[T, K]) Clone() Iterator[T] { return DistinctBy(d.src.Clone(), d.key) }

// TryNonEnumeratedCount implements Iterator.
func (d *DistinctIter[T, K]) TryNonEnumeratedCount() (int, bool) {
	if d.isDone() {
		return 0, true
	}
	return 0, false
}

// Count implements Iterator.
func (d *DistinctIter[T, K]) Count() int {
	if d.isDone() {
		return 0
	}
	c, ok := asContiguous(d.src)
	if !ok {
		return countNaive[T](d)
	}
	n := 0
	for _, v := range c.rest() {
		if d.add(v) {
			n++
		}
	}
	c.exhaust()
	d.finish()
	return n
}

// TryLast implements Iterator. The last distinct element depends on every
// element before it, so this always scans forward.
func (d *DistinctIter[T, K]) TryLast() (T, bool) {
	if d.isDone() {
		var zero T
		return zero, false
	}
	c, ok := asContiguous(d.src)
	if !ok {
		return tryLastNaive[T](d)
	}
	var last T
	found := false
	for _, v := range c.rest() {
		if d.add(v) {
			last, found = v, true
		}
	}
	c.exhaust()
	d.finish()
	return last, found
}

// CopyTo implements Iterator.
func (d *DistinctIter[T, K]) CopyTo(dst []T) int {
	if len(dst) == 0 || d.isDone() {
		return 0
	}
	c, ok := asContiguous(d.src)
	if !ok {
		return copyToNaive[T](d, dst)
	}
	n := 0
	for i, v := range c.rest() {
		if !d.add(v) {
			continue
		}
		dst[n] = v
		n++
		if n == len(dst) {
			c.consume(i + 1)
			d.set(v)
			return n
		}
	}
	c.exhaust()
	d.finish()
	return n
}

// TryTakeRange implements Iterator.
func (d *DistinctIter[T, K]) TryTakeRange(Range) (Iterator[T], bool) { return nil, false }

func (d *DistinctIter[T, K]) appendTo(b *Builder[T]) {
	if d.isDone() {
		return
	}
	c, ok := asContiguous(d.src)
	if !ok {
		appendNaive[T](d, b)
		return
	}
	for _, v := range c.rest() {
		if d.add(v) {
			b.Add(v)
		}
	}
	c.exhaust()
	d.finish()
}

// SizeHint implements SizeHinter.
func (d *DistinctIter[T, K]) SizeHint() int { return sizeHint(d.src) }

func (d *DistinctIter[T, K]) fastPath() bool {
	_, ok := asContiguous(d.src)
	return ok
}
