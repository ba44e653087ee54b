// Command seqdemo runs sequence pipelines over a generated triangle mesh and
// reports what they found. Pipelines are traced and the sequence metrics are
// exported over OTLP when enabled in the config.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/pool"
	"github.com/kbukum/seqkit/seq"
	"github.com/kbukum/seqkit/validation"
	"github.com/kbukum/seqkit/version"
)

const serviceName = "seqdemo"

type demoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Pool                 pool.Config                `yaml:"pool" mapstructure:"pool"`
	Metrics              observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
	Tracing              observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	GridSize             int                        `yaml:"grid_size" mapstructure:"grid_size"`

	// gridOverride is the -grid flag; it wins over the file and environment.
	gridOverride int
}

func defaultConfig() demoConfig {
	return demoConfig{
		Metrics:  observability.DefaultMeterConfig(serviceName),
		Tracing:  observability.DefaultTracerConfig(serviceName),
		GridSize: 64,
	}
}

func (c *demoConfig) ApplyDefaults() {
	if c.Base.Name == "" {
		c.Base.Name = serviceName
	}
	if c.gridOverride > 0 {
		c.GridSize = c.gridOverride
	}
	c.ServiceConfig.ApplyDefaults()
	c.Pool.ApplyDefaults()
	if c.Base.Version == "" {
		c.Base.Version = version.Get().Short()
	}
	c.Metrics.ServiceVersion = c.Base.Version
	c.Tracing.ServiceVersion = c.Base.Version
	c.Metrics.Environment = c.Base.Environment
	c.Tracing.Environment = c.Base.Environment
}

func (c *demoConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.New().Range("grid_size", c.GridSize, 1, 4096).Validate(); err != nil {
		return err
	}
	if err := c.Pool.Validate(); err != nil {
		return fmt.Errorf("config.pool: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("config.metrics: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("config.tracing: %w", err)
	}
	return nil
}

func main() {
	configFile := flag.String("config", "", "path to config.yml (searched for when empty)")
	gridSize := flag.Int("grid", 0, "mesh grid size, overrides grid_size")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Short())
		return
	}

	cfg := defaultConfig()
	cfg.gridOverride = *gridSize
	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "seqdemo: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, &cfg); err != nil {
		logger.Get(serviceName).WithError(err).Error("seqdemo failed", logger.Fields(logger.FieldOperation, "run"))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *demoConfig) error {
	logger.Init(cfg.Logging)
	log := logger.Get(serviceName).WithFields(logger.Fields("grid_size", cfg.GridSize))

	if err := pool.Configure(cfg.Pool); err != nil {
		return err
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &cfg.Metrics)
		if err != nil {
			return err
		}
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err = observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		seq.SetRecorder(metrics)
		defer seq.SetRecorder(nil)
	}
	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			return err
		}
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	mesh := gridMesh(cfg.GridSize)
	log.Debug("mesh generated", logger.Fields("vertices", len(mesh.Vertices)))

	start := time.Now()
	r, err := analyze(ctx, mesh, metrics)
	if err != nil {
		return err
	}

	log.Info("mesh analyzed", logger.DurationFields("analyze", time.Since(start)), logger.Fields(
		"triangles", r.Triangles,
		"front_facing", r.FrontFacing,
		"unique_vertices", r.UniqueVertices,
		"interior", r.Interior,
		"surface_area", r.SurfaceArea,
		"largest_area", r.LargestArea,
	))
	if r.HasBackFace {
		log.Info("first back face", logger.Fields("triangle", fmt.Sprintf("%v", r.FirstBackFace)))
	}
	return nil
}
