package pool

import (
	"testing"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {16, 4}, {17, 5}, {1024, 10}, {1025, 11},
	}
	for _, tc := range tests {
		if got := bucketFor(tc.n); got != tc.want {
			t.Errorf("bucketFor(%d): expected %d, got %d", tc.n, tc.want, got)
		}
	}
}

func TestRent_PowerOfTwoAtLeastMinimum(t *testing.T) {
	p := New[int]()
	tests := []struct {
		minLen int
		want   int
	}{
		{0, MinSegmentLen},
		{5, MinSegmentLen},
		{16, 16},
		{17, 32},
		{100, 128},
	}
	for _, tc := range tests {
		buf := p.Rent(tc.minLen)
		if len(buf) != tc.want || cap(buf) != tc.want {
			t.Errorf("Rent(%d): expected len=cap=%d, got len=%d cap=%d", tc.minLen, tc.want, len(buf), cap(buf))
		}
	}
	rented, misses := p.Stats()
	if rented != int64(len(tests)) {
		t.Errorf("expected %d rents, got %d", len(tests), rented)
	}
	if misses == 0 {
		t.Error("expected fresh pool to record misses")
	}
}

func TestReturn_ClearsContents(t *testing.T) {
	p := New[*int]()
	buf := p.Rent(16)
	v := 42
	for i := range buf {
		buf[i] = &v
	}
	p.Return(buf)
	for i, e := range buf {
		if e != nil {
			t.Fatalf("expected element %d to be cleared on return", i)
		}
	}
}

func TestReturn_IgnoresNonPowerOfTwo(t *testing.T) {
	p := New[int]()
	// Must not panic or corrupt buckets.
	p.Return(make([]int, 10))
	p.Return(nil)
	buf := p.Rent(16)
	if len(buf) != 16 {
		t.Errorf("expected 16, got %d", len(buf))
	}
}

func TestFor_SharedPerType(t *testing.T) {
	if For[int]() != For[int]() {
		t.Error("expected the same pool for the same element type")
	}
	a := any(For[int]())
	b := any(For[string]())
	if a == b {
		t.Error("expected distinct pools for distinct element types")
	}
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		if cfg.MinSegmentLen != MinSegmentLen || cfg.MaxSegmentLen != MaxSegmentLen || cfg.MaxPooledLen != MaxPooledLen {
			t.Errorf("unexpected defaults %+v", cfg)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})

	t.Run("max below min is rejected", func(t *testing.T) {
		cfg := Config{MinSegmentLen: 64, MaxSegmentLen: 32, MaxPooledLen: 1024}
		if err := cfg.Validate(); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("configure installs settings", func(t *testing.T) {
		t.Cleanup(func() { settings.Store(nil) })
		if err := Configure(Config{MinSegmentLen: 64}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := Current().MinSegmentLen; got != 64 {
			t.Errorf("expected 64, got %d", got)
		}
		if got := len(New[int]().Rent(1)); got != 64 {
			t.Errorf("expected rent to honour the configured minimum, got %d", got)
		}
	})

	t.Run("configure rejects invalid", func(t *testing.T) {
		if err := Configure(Config{MinSegmentLen: 128, MaxSegmentLen: 16}); err == nil {
			t.Error("expected error")
		}
	})
}

type totalsElem struct{ n int }

func TestTotals_IncludeSharedPools(t *testing.T) {
	rentedBefore, missesBefore := Totals()
	p := For[totalsElem]()
	p.Return(p.Rent(16))
	p.Rent(16)

	rented, misses := Totals()
	if rented != rentedBefore+2 {
		t.Errorf("expected %d rents, got %d", rentedBefore+2, rented)
	}
	if misses < missesBefore+1 {
		t.Errorf("expected at least one new miss, got %d then %d", missesBefore, misses)
	}

	New[totalsElem]().Rent(16)
	if r, _ := Totals(); r != rented {
		t.Errorf("expected private pools to be excluded, got %d", r)
	}
}
