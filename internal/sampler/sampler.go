// Package sampler turns CPU counters or OS-supplied percentages into ordered
// per-core utilization records.
package sampler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// Source names accepted by New.
const (
	SourceAuto    = "auto"
	SourceProcfs  = "procfs"
	SourceTimes   = "times"
	SourcePercent = "percent"
)

// DefaultBootstrapDelay separates the two reads of a bootstrap.
const DefaultBootstrapDelay = 100 * time.Millisecond

// CPUSampler produces one ordered list of CPU records per call. Calls must
// not overlap.
type CPUSampler interface {
	Sample(ctx context.Context) ([]model.CPURecord, error)
}

// Options configure a sampler.
type Options struct {
	Source         string
	ShowAverage    bool
	BootstrapDelay time.Duration
	ProcRoot       string
	Logger         *slog.Logger
}

// New picks the sampler variant once, from opts.Source or the build target
// when the source is "auto".
func New(opts Options) (CPUSampler, error) {
	src := opts.Source
	if src == "" || src == SourceAuto {
		src = defaultSource
	}
	switch src {
	case SourceProcfs:
		cs, err := newProcfsSource(opts.ProcRoot)
		if err != nil {
			return nil, err
		}
		return NewDeltaSampler(cs, opts), nil
	case SourceTimes:
		return NewDeltaSampler(NewTimesSource(), opts), nil
	case SourcePercent:
		return NewPercentSampler(NewGopsutilPercentSource(), opts.ShowAverage), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, src)
	}
}

// assemble orders records: AVG first when avg is set, then cores by index.
func assemble(avg *float64, cores []float64) []model.CPURecord {
	out := make([]model.CPURecord, 0, len(cores)+1)
	if avg != nil {
		out = append(out, model.AverageRecord(*avg))
	}
	for i, u := range cores {
		out = append(out, model.CoreRecord(i, u))
	}
	return out
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
