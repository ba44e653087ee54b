package seq

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/seqkit/errors"
)

func TestContiguous_Lifecycle(t *testing.T) {
	it := Of([]int{1, 2, 3})
	assertInvalidState(t, func() { it.Current() })

	for _, want := range []int{1, 2, 3} {
		if !it.MoveNext() {
			t.Fatalf("expected element %d", want)
		}
		if got := it.Current(); got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
	if it.MoveNext() || it.MoveNext() {
		t.Fatal("expected exhaustion to stick")
	}
	assertInvalidState(t, func() { it.Current() })

	it.Reset()
	if !it.MoveNext() || it.Current() != 1 {
		t.Error("expected Reset to restart at 1")
	}
}

func TestContiguous_TryTakeRange(t *testing.T) {
	it := Of([]int{0, 1, 2, 3, 4, 5})
	sub, ok := it.TryTakeRange(RangeOf(1, 4))
	if !ok {
		t.Fatal("expected contiguous source to narrow")
	}
	if _, ok := sub.(*Contiguous[int]); !ok {
		t.Errorf("expected *Contiguous, got %T", sub)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, ToSlice(sub)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, ok := Of([]int{1}).TryTakeRange(RangeOf(3, 4)); ok {
		t.Error("expected out-of-range start to fail")
	}
}

func TestContiguous_CopyToConsumesCopied(t *testing.T) {
	it := Of([]int{1, 2, 3, 4})
	dst := make([]int, 2)
	if n := it.CopyTo(dst); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if it.Current() != 2 {
		t.Errorf("expected Current 2, got %d", it.Current())
	}
	dst = make([]int, 5)
	if n := it.CopyTo(dst); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if diff := cmp.Diff([]int{3, 4}, dst[:2]); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if it.MoveNext() {
		t.Error("expected exhausted after short copy")
	}
}

func TestContiguous_View(t *testing.T) {
	it := Of([]int{1, 2, 3})
	it.MoveNext()
	v := it.View()
	if v.Len() != 2 {
		t.Fatalf("expected view of 2, got %d", v.Len())
	}
	if n, ok := it.TryNonEnumeratedCount(); !ok || n != 2 {
		t.Errorf("expected remaining count 2, got %d (%v)", n, ok)
	}
}

func TestSingleItem(t *testing.T) {
	s := Single(7)
	if n, ok := s.TryNonEnumeratedCount(); !ok || n != 1 {
		t.Errorf("expected count 1, got %d (%v)", n, ok)
	}
	if diff := cmp.Diff([]int{7}, ToSlice(s)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if n, _ := s.TryNonEnumeratedCount(); n != 0 {
		t.Errorf("expected 0 remaining, got %d", n)
	}
	s.Reset()
	if v, ok := s.TryLast(); !ok || v != 7 {
		t.Errorf("expected last 7, got %d (%v)", v, ok)
	}

	e := Empty[string]()
	if e.MoveNext() {
		t.Error("expected empty source")
	}
	if sub, ok := Single(1).TryTakeRange(RangeOf(1, 1)); !ok || Count(sub) != 0 {
		t.Error("expected empty narrowed source")
	}
}

func TestExternal(t *testing.T) {
	it := FromSeq(slices.Values([]string{"a", "b", "c"}))
	if _, ok := it.TryNonEnumeratedCount(); ok {
		t.Error("expected unknown count before enumeration")
	}
	if !it.MoveNext() || it.Current() != "a" {
		t.Fatal("expected a")
	}
	clone := it.Clone()
	if diff := cmp.Diff([]string{"b", "c"}, drain[string](it)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if n, ok := it.TryNonEnumeratedCount(); !ok || n != 0 {
		t.Errorf("expected known zero once exhausted, got %d (%v)", n, ok)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ToSlice(clone)); diff != "" {
		t.Errorf("clone mismatch (-want +got):\n%s", diff)
	}

	it.Reset()
	if !it.MoveNext() || it.Current() != "a" {
		t.Error("expected Reset to restart")
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if it.MoveNext() {
		t.Error("expected closed source to stay exhausted")
	}
}

func TestExternal_StopsProducerEarly(t *testing.T) {
	produced := 0
	it := FromSeq(func(yield func(int) bool) {
		for i := 0; ; i++ {
			produced++
			if !yield(i) {
				return
			}
		}
	})
	taken := must(Take[int](it, 2))
	if diff := cmp.Diff([]int{0, 1}, ToSlice(taken)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if produced != 2 {
		t.Errorf("expected 2 elements produced, got %d", produced)
	}
	if err := taken.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFromSlices(t *testing.T) {
	it := FromSlices([]int{1}, nil, []int{2, 3})
	if _, ok := TryNonEnumeratedCount[int](it); ok {
		t.Error("expected FromSlices to hide its count")
	}
	if diff := cmp.Diff([]int{1, 2, 3}, ToSlice[int](it)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestView(t *testing.T) {
	v := ViewOf([]int{1, 2, 3, 4})
	if got, err := v.At(2); err != nil || got != 3 {
		t.Errorf("expected 3, got %d (%v)", got, err)
	}
	_, err := v.At(4)
	assertCode(t, err, errors.ErrCodeIndexOutOfRange)

	sub, err := v.Slice(RangeOf(1, -1))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 3}, sub.Items()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	_, err = v.Slice(RangeOf(3, 2))
	assertCode(t, err, errors.ErrCodeInvalidRange)

	dst := make([]int, 2)
	if n := sub.CopyTo(dst); n != 2 {
		t.Errorf("expected 2 copied, got %d", n)
	}
	if !sub.ToList().IsReadOnly() {
		t.Error("expected read-only list from view")
	}
	if Count(sub.Iter()) != 2 {
		t.Error("expected iterator over view")
	}
}

func TestTryAsContiguous(t *testing.T) {
	closes := 0
	tests := []struct {
		name string
		it   Iterator[int]
		want bool
	}{
		{"contiguous", Of([]int{1, 2}), true},
		{"embedding wrapper", closeCounter[int]{Contiguous: Of([]int{1, 2}), closes: &closes}, false},
		{"external", pulled([]int{1, 2}), false},
		{"map over contiguous", Map(Of([]int{1, 2}), times10), false},
		{"narrowed", must(Take[int](Of([]int{1, 2, 3}), 2)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := TryAsContiguous(tt.it); ok != tt.want {
				t.Errorf("expected %v, got %v", tt.want, ok)
			}
		})
	}
}

func TestValues(t *testing.T) {
	it := Of([]int{1, 2, 3, 4})
	var got []int
	for v := range Values[int](it) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if it.Current() != 2 {
		t.Errorf("expected iterator left on 2, got %d", it.Current())
	}
}
