package seq

import (
	"testing"

	"github.com/kbukum/seqkit/errors"
)

// pulled returns a source over xs that never takes a fast path.
func pulled[T any](xs []T) Iterator[T] { return FromSlices(xs) }

// drain collects the remaining elements by MoveNext/Current only.
func drain[T any](it Iterator[T]) []T {
	out := []T{}
	for it.MoveNext() {
		out = append(out, it.Current())
	}
	return out
}

// must unwraps a constructor result in table setup, where t is not at hand.
func must[T any](it Iterator[T], err error) Iterator[T] {
	if err != nil {
		panic(err)
	}
	return it
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !errors.IsCode(err, code) {
		t.Fatalf("expected %s error, got %v", code, err)
	}
}

func assertInvalidState(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.IsCode(err, errors.ErrCodeInvalidState) {
			t.Fatalf("expected INVALID_STATE panic, got %v", r)
		}
	}()
	fn()
}

// closeCounter wraps a contiguous source and counts Close calls. Because it
// embeds the source it is not itself a *Contiguous.
type closeCounter[T any] struct {
	*Contiguous[T]
	closes *int
}

func (c closeCounter[T]) Close() error {
	*c.closes++
	return c.Contiguous.Close()
}

// fakeRecorder captures everything reported through Recorder.
type fakeRecorder struct {
	terminals []string
	fast      []bool
	rents     []int
}

func (f *fakeRecorder) RecordTerminal(op string, fast bool) {
	f.terminals = append(f.terminals, op)
	f.fast = append(f.fast, fast)
}

func (f *fakeRecorder) RecordSegmentRent(size int) { f.rents = append(f.rents, size) }

func installRecorder(t *testing.T) *fakeRecorder {
	t.Helper()
	r := &fakeRecorder{}
	SetRecorder(r)
	t.Cleanup(func() { SetRecorder(nil) })
	return r
}

func gt2(x int) bool { return x > 2 }
func times10(x int) int { return x * 10 }
func dup(x int) []int { return []int{x, x} }
func toAny(x int) any { return x }
func isEven(x int) bool { return x%2 == 0 }
func mod3(x int) int { return x % 3 }
func negate(x int) int { return -x }
func strLen(s string) int { return len(s) }
