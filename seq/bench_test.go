package seq

import "testing"

var benchData = seqInts(4096)

func BenchmarkToSlice_FilterMap(b *testing.B) {
	b.Run("fast", func(b *testing.B) {
		for b.Loop() {
			_ = ToSlice(Map(Filter(Of(benchData), isEven), times10))
		}
	})
	b.Run("pull", func(b *testing.B) {
		for b.Loop() {
			_ = ToSlice(Map(Filter(pulled(benchData), isEven), times10))
		}
	})
}

func BenchmarkCount_Filter(b *testing.B) {
	b.Run("fast", func(b *testing.B) {
		for b.Loop() {
			_ = Count(Filter(Of(benchData), isEven))
		}
	})
	b.Run("pull", func(b *testing.B) {
		for b.Loop() {
			_ = Count(Filter(pulled(benchData), isEven))
		}
	})
}

func BenchmarkTryLast_Filter(b *testing.B) {
	b.Run("fast", func(b *testing.B) {
		for b.Loop() {
			_, _ = Filter(Of(benchData), isEven).TryLast()
		}
	})
	b.Run("pull", func(b *testing.B) {
		for b.Loop() {
			_, _ = Filter(pulled(benchData), isEven).TryLast()
		}
	})
}

func BenchmarkBuilder(b *testing.B) {
	b.Run("builder", func(b *testing.B) {
		for b.Loop() {
			var scratch [32]int
			bl := NewBuilder(scratch[:])
			for _, v := range benchData {
				bl.Add(v)
			}
			_ = bl.ToSlice()
			bl.Dispose()
		}
	})
	b.Run("append", func(b *testing.B) {
		for b.Loop() {
			var out []int
			for _, v := range benchData {
				out = append(out, v)
			}
			_ = out
		}
	})
}
