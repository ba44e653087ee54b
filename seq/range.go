package seq

import (
	"fmt"

	"github.com/kbukum/seqkit/errors"
)

// Index is a position counted from the start or from the end of a sequence.
type Index struct {
	value   int
	fromEnd bool
}

// At returns the index i counted from the start.
func At(i int) Index { return Index{value: i} }

// FromEnd returns the index i counted back from the end; FromEnd(0) is the
// position just past the last element.
func FromEnd(i int) Index { return Index{value: i, fromEnd: true} }

// Offset resolves the index against a sequence of length n.
func (i Index) Offset(n int) int {
	if i.fromEnd {
		return n - i.value
	}
	return i.value
}

// IsFromEnd reports whether the index counts from the end.
func (i Index) IsFromEnd() bool { return i.fromEnd }

// Value returns the raw index value.
func (i Index) Value() int { return i.value }

func (i Index) String() string {
	if i.fromEnd {
		return fmt.Sprintf("^%d", i.value)
	}
	return fmt.Sprintf("%d", i.value)
}

// Range is a half-open interval [Start, End).
type Range struct {
	Start Index
	End   Index
}

// Span returns the range [start, end).
func Span(start, end Index) Range { return Range{Start: start, End: end} }

// RangeOf builds a range from plain integers; negative values count from the
// end, so RangeOf(1, -1) drops the first and last elements.
func RangeOf(start, end int) Range {
	return Range{Start: intIndex(start), End: intIndex(end)}
}

// Whole is the range covering every element.
func Whole() Range { return Range{Start: At(0), End: FromEnd(0)} }

func intIndex(i int) Index {
	if i < 0 {
		return FromEnd(-i)
	}
	return At(i)
}

func (r Range) String() string { return r.Start.String() + ".." + r.End.String() }

// needsLength reports whether resolving r requires the sequence length.
// A range from the start of the sequence with an absolute end can be served
// lazily because its end simply clamps at exhaustion.
func (r Range) needsLength() bool {
	return r.Start.fromEnd || r.End.fromEnd || r.Start.value > 0
}

// Resolve converts r to absolute offsets within a sequence of length n.
// Negative index values are rejected. A start before the beginning clamps to
// 0 and an end past the finish clamps to n; a start beyond n or an end
// before start fails with INVALID_RANGE.
func (r Range) Resolve(n int) (start, end int, err error) {
	if r.Start.value < 0 || r.End.value < 0 {
		return 0, 0, invalidRange(r, n, "negative index")
	}
	start = max(r.Start.Offset(n), 0)
	end = min(max(r.End.Offset(n), 0), n)
	if start > n {
		return 0, 0, invalidRange(r, n, "start beyond source length")
	}
	if end < start {
		return 0, 0, invalidRange(r, n, "negative length")
	}
	return start, end, nil
}

func invalidRange(r Range, n int, reason string) error {
	return errors.InvalidRange(reason).
		WithDetail("range", r.String()).
		WithDetail("length", n)
}
