package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/errors"
)

// Run status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// PipelineRun holds observability context for one tracked pipeline run.
type PipelineRun struct {
	Name      string
	StartTime time.Time
	Metrics   *Metrics
}

// NewPipelineRun creates a run context.
// If metrics is nil, metric recording is silently skipped.
func NewPipelineRun(name string, metrics *Metrics) *PipelineRun {
	return &PipelineRun{
		Name:      name,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type pipelineRunKey struct{}

// WithPipelineRun stores a PipelineRun in the context.
func WithPipelineRun(ctx context.Context, run *PipelineRun) context.Context {
	return context.WithValue(ctx, pipelineRunKey{}, run)
}

// PipelineRunFromContext retrieves the PipelineRun from context, or nil.
func PipelineRunFromContext(ctx context.Context) *PipelineRun {
	if run, ok := ctx.Value(pipelineRunKey{}).(*PipelineRun); ok {
		return run
	}
	return nil
}

// Start opens the run's span and stores the run in the returned context.
func (r *PipelineRun) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanPipeline)
	span.SetAttributes(attribute.String(AttrPipelineName, r.Name))
	return WithPipelineRun(ctx, r), span
}

// End closes the span and records the run. count is the number of
// elements the pipeline produced.
func (r *PipelineRun) End(ctx context.Context, span trace.Span, count int, err error) {
	duration := r.Duration()
	status := StatusOK
	if err != nil {
		status = StatusError
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		if se, ok := errors.AsSeqError(err); ok {
			span.SetAttributes(attribute.String(AttrErrorCode, string(se.Code)))
		}
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrResultCount, count),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if r.Metrics != nil {
		r.Metrics.RecordPipeline(ctx, r.Name, status, duration)
	}
}

// Duration returns the elapsed time since the run started.
func (r *PipelineRun) Duration() time.Duration {
	return time.Since(r.StartTime)
}

// Track runs fn inside a traced PipelineRun. fn reports how many elements
// it produced.
//
// A panic carrying a contract *errors.SeqError (an iterator used outside its
// valid state, a mutation of a read-only list) ends the run as failed and is
// returned as the error. Any other panic is recorded and re-raised.
func Track(ctx context.Context, name string, metrics *Metrics, fn func(context.Context) (int, error)) (err error) {
	run := NewPipelineRun(name, metrics)
	ctx, span := run.Start(ctx)
	count := 0
	defer func() {
		r := recover()
		if r == nil {
			run.End(ctx, span, count, err)
			return
		}
		se, ok := r.(*errors.SeqError)
		if !ok || !errors.IsContractCode(se.Code) {
			run.End(ctx, span, 0, fmt.Errorf("pipeline panicked: %v", r))
			panic(r)
		}
		err = se
		run.End(ctx, span, 0, err)
	}()
	count, err = fn(ctx)
	return err
}
