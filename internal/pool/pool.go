// Package pool runs batches of isolation jobs concurrently. Every job gets
// its own child process, pipes, and temporary file, so jobs never share
// mutable state; the pool only bounds how many children exist at once and
// how fast they are spawned.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"isorun/internal/logger"
	"isorun/pkg/isolate"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Config holds pool tuning knobs.
type Config struct {
	// Concurrency is the maximum number of children alive at once.
	Concurrency int

	// SpawnRate limits process creation per second. Zero means unlimited.
	SpawnRate float64

	// Logger receives per-job records. Nil disables logging.
	Logger *slog.Logger
}

// Outcome is the result of one job in a batch, in submission order.
type Outcome struct {
	ID     uuid.UUID
	Result isolate.Result
	Err    error
}

// Pool executes batches of jobs through a shared runner.
type Pool struct {
	runner  *isolate.Runner
	config  Config
	limiter *rate.Limiter

	jobsStarted metric.Int64Counter
	jobsFailed  metric.Int64Counter
	jobSeconds  metric.Float64Histogram
}

// New creates a pool around the given runner.
func New(r *isolate.Runner, config Config) (*Pool, error) {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	var limiter *rate.Limiter
	if config.SpawnRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.SpawnRate), 1)
	}

	meter := otel.Meter("isorun/pool")

	jobsStarted, err := meter.Int64Counter("isorun.jobs.started",
		metric.WithDescription("Worker processes spawned"))
	if err != nil {
		return nil, fmt.Errorf("failed to create jobs counter: %w", err)
	}
	jobsFailed, err := meter.Int64Counter("isorun.jobs.failed",
		metric.WithDescription("Jobs that failed to spawn or drain"))
	if err != nil {
		return nil, fmt.Errorf("failed to create failures counter: %w", err)
	}
	jobSeconds, err := meter.Float64Histogram("isorun.job.duration",
		metric.WithDescription("Wall time per job"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &Pool{
		runner:      r,
		config:      config,
		limiter:     limiter,
		jobsStarted: jobsStarted,
		jobsFailed:  jobsFailed,
		jobSeconds:  jobSeconds,
	}, nil
}

// RunAll executes every job and blocks until all children have exited.
// Outcomes are returned in submission order. A cancelled context kills the
// in-flight children and fails the jobs not yet started.
func (p *Pool) RunAll(ctx context.Context, jobs []isolate.Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))

	sem := make(chan struct{}, p.config.Concurrency)
	var wg sync.WaitGroup

	tracer := otel.Tracer("isorun/pool")

	for i, j := range jobs {
		sem <- struct{}{}

		wg.Add(1)
		go func(i int, j isolate.Job) {
			defer wg.Done()
			defer func() { <-sem }()

			outcomes[i] = p.runOne(ctx, tracer, j)
		}(i, j)
	}

	wg.Wait()
	return outcomes
}

func (p *Pool) runOne(ctx context.Context, tracer trace.Tracer, j isolate.Job) Outcome {
	id := uuid.New()

	spanCtx, span := tracer.Start(ctx, "run_job",
		trace.WithAttributes(
			attribute.String("job.id", id.String()),
			attribute.Bool("job.has_input", j.HasInput()),
			attribute.Int("job.settings", len(j.Settings)),
		),
	)
	defer span.End()

	// The job ID travels in the context so every log record below it is
	// correlated without threading the ID through each call.
	jobCtx := logger.WithJobID(spanCtx, id.String())

	if p.limiter != nil {
		if err := p.limiter.Wait(jobCtx); err != nil {
			span.RecordError(err)
			return Outcome{ID: id, Err: err}
		}
	}

	if p.config.Logger != nil {
		logger.FromContext(jobCtx, p.config.Logger).Info("running job")
	}

	p.jobsStarted.Add(jobCtx, 1)
	start := time.Now()

	result, err := p.runner.Run(jobCtx, j)

	p.jobSeconds.Record(jobCtx, time.Since(start).Seconds())

	if err != nil {
		p.jobsFailed.Add(jobCtx, 1)
		span.RecordError(err)
		if p.config.Logger != nil {
			logger.FromContext(jobCtx, p.config.Logger).Error("job failed", "error", err)
		}
	}

	return Outcome{ID: id, Result: result, Err: err}
}
