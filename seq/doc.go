// Package seq provides lazy, composable sequence combinators with a
// contiguous-memory fast path.
//
// A pipeline starts from a source and is extended with combinators. Nothing
// runs until a terminal operation pulls values:
//
//	it := seq.Map(seq.Filter(seq.Of(xs), isVisible), toScreen)
//	pts := seq.ToSlice(it)
//
// # Sources
//
//   - Of: a borrowed, read-only slice. This is the privileged source.
//   - Single / Empty: zero or one element.
//   - FromSeq / FromSlices: any iter.Seq; never takes a fast path.
//
// # Combinators
//
// Filter, Map, FlatMap, FlatMapSlice, Slice, Take, Skip, TakeLast, SkipLast,
// Concat, Append, Prepend, ConcatAll, Distinct, DistinctBy, OfType, Chunk.
//
// # Fast path
//
// Each combinator checks whether its upstream is exactly *Contiguous[T]. When
// it is, Count, TryLast, CopyTo and materialization operate on the buffer
// directly: counts are lengths, slicing narrows the view, and TryLast scans
// backward. Results and the resulting iterator state never differ from plain
// MoveNext iteration.
//
// # Terminal operations
//
// First, Last, Count, CopyTo, ElementAt, ToSlice, ToList, ToSet, ToMap,
// Aggregate, Sum, Min, Max, Any, All, Contains, ForEach. They consume the
// iterator from its current position. Materializing a sequence of unknown
// length goes through Builder, which grows in pooled segments instead of
// reallocating one slice.
//
// # Errors
//
// Operations that can fail return a *errors.SeqError: EMPTY_SEQUENCE from
// First, Last, Aggregate, Min and Max, INVALID_RANGE from range and chunk
// construction, INDEX_OUT_OF_RANGE from indexed access, and
// UNSUPPORTED_OPERATION from mutating a read-only List. Calling Current
// outside enumeration panics with an INVALID_STATE error.
//
// Pipelines are not safe for concurrent use.
package seq
