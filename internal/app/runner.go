package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/internal/metrics"
	"github.com/bft-labs/lakhbronze/internal/ports"
	"github.com/bft-labs/lakhbronze/pkg/log"
)

// DefaultConcurrency is the number of resources run at once.
const DefaultConcurrency = 4

// RunnerConfig contains configuration for a run.
type RunnerConfig struct {
	// Concurrency bounds the resources in flight. Zero uses DefaultConcurrency.
	Concurrency int

	Metrics *metrics.Metrics
}

// Runner drives resources into a sink. Each resource is read by exactly one
// goroutine; independent resources run concurrently.
type Runner struct {
	config  RunnerConfig
	sink    ports.BatchSink
	reports ports.ReportRepository
	logger  log.Logger
	emitter EventEmitter
}

// NewRunner creates a runner. reports and emitter may be nil.
func NewRunner(
	config RunnerConfig,
	sink ports.BatchSink,
	reports ports.ReportRepository,
	logger log.Logger,
	emitter EventEmitter,
) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	return &Runner{
		config:  config,
		sink:    sink,
		reports: reports,
		logger:  log.OrNoop(logger),
		emitter: emitter,
	}
}

// Run drains every resource into the sink and returns the run report.
// The first resource to fail cancels the others and its error is returned.
// Entries dropped inside a resource are counted in the report, not returned.
// When a report repository is configured the report is saved even on failure.
func (r *Runner) Run(ctx context.Context, resources ...Resource) (domain.Report, error) {
	report := domain.Report{
		StartedAt: time.Now(),
		Resources: make([]domain.ResourceReport, len(resources)),
	}

	tracker := NewTracker(r.logger, r.emitter)
	for _, res := range resources {
		if err := tracker.Register(res.Name()); err != nil {
			return report, fmt.Errorf("%w: duplicate resource %s", domain.ErrInvalidConfig, res.Name())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for i, res := range resources {
		i, res := i, res
		g.Go(func() error {
			rr, err := r.runOne(gctx, tracker, res)
			report.Resources[i] = rr
			return err
		})
	}
	err := g.Wait()
	report.FinishedAt = time.Now()

	r.logger.Info("run complete",
		log.Int("resources", len(resources)),
		log.Int64("records", report.Records()),
		log.Int("failed", len(report.Failed())),
		log.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	if r.reports != nil {
		if saveErr := r.reports.Save(context.WithoutCancel(ctx), report); saveErr != nil {
			r.logger.Error("failed to save report", log.Err(saveErr))
			if err == nil {
				err = saveErr
			}
		}
	}
	return report, err
}

func (r *Runner) runOne(ctx context.Context, tracker *Tracker, res Resource) (domain.ResourceReport, error) {
	name := res.Name()
	logger := r.logger.With(log.String("resource", name))
	start := time.Now()

	rr, err := r.drain(ctx, tracker, res)
	rr.Name = name
	rr.Duration = time.Since(start)
	r.config.Metrics.ResourceDone(name, rr.Duration)

	if err != nil {
		rr.Error = err.Error()
		_ = tracker.TransitionTo(name, StateFailed, err.Error())
		logger.Error("resource failed",
			log.Err(err),
			log.Int64("batches", rr.Batches),
			log.Int64("records", rr.Records),
		)
		return rr, err
	}

	_ = tracker.TransitionTo(name, StateDone, "exhausted")
	logger.Info("resource complete",
		log.Int64("batches", rr.Batches),
		log.Int64("records", rr.Records),
		log.Int64("skipped", rr.Skipped),
		log.Int64("failed", rr.Failed),
		log.Duration("duration", rr.Duration),
	)
	return rr, nil
}

func (r *Runner) drain(ctx context.Context, tracker *Tracker, res Resource) (domain.ResourceReport, error) {
	name := res.Name()
	if err := ctx.Err(); err != nil {
		return domain.ResourceReport{}, err
	}
	_ = tracker.TransitionTo(name, StateRunning, "started")

	stream, err := res.Open(ctx)
	if err != nil {
		return domain.ResourceReport{}, err
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			r.logger.Warn("close resource", log.String("resource", name), log.Err(cerr))
		}
	}()

	for {
		b, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			return stream.Stats(), nil
		}
		if err != nil {
			return stream.Stats(), err
		}
		if err := r.sink.Write(ctx, name, b); err != nil {
			return stream.Stats(), fmt.Errorf("%s: write batch %d: %w", name, b.Seq, err)
		}
	}
}
