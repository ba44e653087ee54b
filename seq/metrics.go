package seq

import "sync/atomic"

// Recorder observes terminal operations and builder allocations. Install one
// with SetRecorder; the default discards everything.
type Recorder interface {
	// RecordTerminal is called once per package-level terminal operation.
	// fast reports whether it ran directly over contiguous memory.
	RecordTerminal(op string, fast bool)
	// RecordSegmentRent is called when a Builder rents a segment of size
	// elements from the pool.
	RecordSegmentRent(size int)
}

type nopRecorder struct{}

func (nopRecorder) RecordTerminal(string, bool) {}
func (nopRecorder) RecordSegmentRent(int)       {}

type recorderHolder struct{ r Recorder }

var currentRecorder atomic.Pointer[recorderHolder]

func init() {
	currentRecorder.Store(&recorderHolder{r: nopRecorder{}})
}

// SetRecorder installs r for all pipelines. A nil r restores the no-op
// recorder.
func SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	currentRecorder.Store(&recorderHolder{r: r})
}

func recorder() Recorder { return currentRecorder.Load().r }

func record[T any](op string, it Iterator[T]) {
	recorder().RecordTerminal(op, isFast(it))
}
