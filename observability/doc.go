// Package observability provides OpenTelemetry tracing and metrics for
// sequence pipelines.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("seqdemo"))
//	defer tp.Shutdown(ctx)
//
//	err = observability.Track(ctx, "visible-triangles", metrics, func(ctx context.Context) (int, error) {
//		out := seq.ToSlice(seq.Filter(seq.Of(tris), visible))
//		return len(out), nil
//	})
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("seqdemo"))
//	seq.SetRecorder(metrics)
//
// Once installed, every terminal operation is counted by name and by
// execution path (fast over contiguous memory, or pull), and builder
// segment rentals are counted with their size.
package observability
