// Package pool provides the shared pooled-allocation service used by
// seq.Builder: slices are rented in power-of-two sizes and returned once the
// builder has copied them into their final destination.
//
// # Usage
//
//	p := pool.For[int]()
//	buf := p.Rent(100) // len(buf) == 128
//	defer p.Return(buf)
//
// The size limits come from Config and can be changed once at startup:
//
//	pool.Configure(pool.Config{MinSegmentLen: 64})
package pool
