package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// DeltaSampler computes usage by diffing cumulative counters against the
// previous cycle. It owns its PriorState; Sample must not be called
// concurrently.
type DeltaSampler struct {
	source      CounterSource
	showAverage bool
	delay       time.Duration
	wait        func(ctx context.Context, d time.Duration) error
	log         *slog.Logger

	prior model.PriorState
}

func NewDeltaSampler(source CounterSource, opts Options) *DeltaSampler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	delay := opts.BootstrapDelay
	if delay <= 0 {
		delay = DefaultBootstrapDelay
	}
	return &DeltaSampler{
		source:      source,
		showAverage: opts.ShowAverage,
		delay:       delay,
		wait:        sleepCtx,
		log:         log,
	}
}

// reading is one batch from the counter source.
type reading struct {
	cores     []CoreReading
	aggregate *model.CounterSnapshot
}

func (s *DeltaSampler) Sample(ctx context.Context) ([]model.CPURecord, error) {
	return s.cycle(ctx, &s.prior)
}

// cycle runs one sampling cycle against prior. prior is written only once
// every value for the cycle has been computed; on error it is left as is.
func (s *DeltaSampler) cycle(ctx context.Context, prior *model.PriorState) ([]model.CPURecord, error) {
	curr, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	base := *prior
	if prior.Empty() || (s.showAverage && prior.Aggregate == nil) {
		s.log.Debug("bootstrapping cpu baseline", "delay", s.delay, "cores", len(curr.cores))
		if err := s.wait(ctx, s.delay); err != nil {
			return nil, fmt.Errorf("bootstrap wait: %w", err)
		}
		next, err := s.read(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		base = baselineFrom(curr, prior)
		curr = next
	}

	usage, cores := s.diffCores(base.Cores, curr.cores)

	var avg *float64
	aggregate := base.Aggregate
	if curr.aggregate != nil {
		u := 0.0
		if base.Aggregate != nil {
			u = Usage(*base.Aggregate, *curr.aggregate)
		}
		avg = &u
		aggregate = curr.aggregate
	}

	*prior = model.PriorState{Cores: cores, Aggregate: aggregate}
	return assemble(avg, usage), nil
}

// read fetches the per-core batch and, when averaging, the aggregate.
func (s *DeltaSampler) read(ctx context.Context) (reading, error) {
	var r reading
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cores, err := s.source.Cores(gctx)
		if err != nil {
			return fmt.Errorf("reading per-core counters: %w", err)
		}
		if len(cores) == 0 {
			return ErrNoCores
		}
		r.cores = cores
		return nil
	})
	if s.showAverage {
		g.Go(func() error {
			agg, err := s.source.Aggregate(gctx)
			if err != nil {
				return fmt.Errorf("reading aggregate counters: %w", err)
			}
			r.aggregate = &agg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reading{}, err
	}
	return r, nil
}

// diffCores walks curr by index against prev. The result has len(curr)
// slots: extra prev slots are dropped, new cores are appended without a
// baseline. A failed core reports 0 and keeps its previous slot.
func (s *DeltaSampler) diffCores(prev []model.Baseline, curr []CoreReading) ([]float64, []model.Baseline) {
	usage := make([]float64, len(curr))
	next := make([]model.Baseline, len(curr))
	for i, r := range curr {
		var base model.Baseline
		if i < len(prev) {
			base = prev[i]
		}
		switch {
		case r.Err != nil:
			s.log.Debug("cpu core read failed", "core", i, "error", r.Err)
			next[i] = base
		case !base.Seen:
			next[i] = model.Baseline{Snapshot: r.Snapshot, Seen: true}
		default:
			usage[i] = Usage(base.Snapshot, r.Snapshot)
			next[i] = model.Baseline{Snapshot: r.Snapshot, Seen: true}
		}
	}
	return usage, next
}

// baselineFrom turns the first bootstrap read into a baseline. Cores that
// failed in that read fall back to whatever prior already held.
func baselineFrom(first reading, prior *model.PriorState) model.PriorState {
	cores := make([]model.Baseline, len(first.cores))
	for i, r := range first.cores {
		switch {
		case r.Err == nil:
			cores[i] = model.Baseline{Snapshot: r.Snapshot, Seen: true}
		case i < len(prior.Cores):
			cores[i] = prior.Cores[i]
		}
	}
	return model.PriorState{Cores: cores, Aggregate: first.aggregate}
}
