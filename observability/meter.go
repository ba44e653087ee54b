package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/pool"
	"github.com/kbukum/seqkit/validation"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// Enabled turns metric export on.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"min=0"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// Validate validates meter configuration.
func (c *MeterConfig) Validate() error {
	return validation.Validate(c)
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Path attribute values for terminal operations.
const (
	PathFast = "fast"
	PathPull = "pull"
)

// Metrics holds the instruments for sequence pipelines. It implements
// seq.Recorder, so it can be installed with seq.SetRecorder.
type Metrics struct {
	terminalTotal    metric.Int64Counter
	segmentRentTotal metric.Int64Counter
	segmentRentSize  metric.Int64Histogram
	pipelineTotal    metric.Int64Counter
	pipelineDuration metric.Float64Histogram
}

// NewMetrics creates the pipeline instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	terminalTotal, err := meter.Int64Counter("seq.terminal.total",
		metric.WithDescription("Terminal operations by name and execution path"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.terminal.total counter: %w", err)
	}

	segmentRentTotal, err := meter.Int64Counter("seq.builder.segment.rent.total",
		metric.WithDescription("Segments rented from the pool by builders"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.builder.segment.rent.total counter: %w", err)
	}

	segmentRentSize, err := meter.Int64Histogram("seq.builder.segment.rent.size",
		metric.WithDescription("Length of segments rented by builders"),
		metric.WithUnit("{element}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.builder.segment.rent.size histogram: %w", err)
	}

	pipelineTotal, err := meter.Int64Counter("seq.pipeline.total",
		metric.WithDescription("Tracked pipeline runs by name and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.pipeline.total counter: %w", err)
	}

	pipelineDuration, err := meter.Float64Histogram("seq.pipeline.duration",
		metric.WithDescription("Duration of tracked pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.pipeline.duration histogram: %w", err)
	}

	poolRentTotal, err := meter.Int64ObservableCounter("seq.pool.rent.total",
		metric.WithDescription("Slices rented from the shared pools"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.pool.rent.total counter: %w", err)
	}

	poolMissTotal, err := meter.Int64ObservableCounter("seq.pool.miss.total",
		metric.WithDescription("Rents the shared pools had to satisfy with a fresh allocation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.pool.miss.total counter: %w", err)
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		rented, misses := pool.Totals()
		o.ObserveInt64(poolRentTotal, rented)
		o.ObserveInt64(poolMissTotal, misses)
		return nil
	}, poolRentTotal, poolMissTotal)
	if err != nil {
		return nil, fmt.Errorf("registering pool callback: %w", err)
	}

	return &Metrics{
		terminalTotal:    terminalTotal,
		segmentRentTotal: segmentRentTotal,
		segmentRentSize:  segmentRentSize,
		pipelineTotal:    pipelineTotal,
		pipelineDuration: pipelineDuration,
	}, nil
}

// RecordTerminal counts one terminal operation.
func (m *Metrics) RecordTerminal(op string, fast bool) {
	path := PathPull
	if fast {
		path = PathFast
	}
	m.terminalTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("path", path),
	))
}

// RecordSegmentRent counts one builder segment rental of size elements.
func (m *Metrics) RecordSegmentRent(size int) {
	ctx := context.Background()
	m.segmentRentTotal.Add(ctx, 1)
	m.segmentRentSize.Record(ctx, int64(size))
}

// RecordPipeline records a completed pipeline run.
func (m *Metrics) RecordPipeline(ctx context.Context, name, status string, duration time.Duration) {
	m.pipelineTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", name),
		attribute.String("status", status),
	))
	m.pipelineDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("pipeline", name),
	))
}
