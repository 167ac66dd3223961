package sampler

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v3/load"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// Harvester polls a CPUSampler on a fixed interval, one cycle at a time.
type Harvester struct {
	Interval time.Duration

	cpu  CPUSampler
	load func(ctx context.Context) (*load.AvgStat, error)
	log  *slog.Logger
}

func NewHarvester(interval time.Duration, cpu CPUSampler, log *slog.Logger) *Harvester {
	if log == nil {
		log = slog.Default()
	}
	return &Harvester{
		Interval: interval,
		cpu:      cpu,
		load:     load.AvgWithContext,
		log:      log,
	}
}

// Stream returns a channel that will receive snapshots until ctx is done.
// The first sample is taken immediately. Failed cycles are logged and skipped.
func (h *Harvester) Stream(ctx context.Context) <-chan model.Sample {
	ch := make(chan model.Sample)
	go func() {
		ticker := time.NewTicker(h.Interval)
		defer ticker.Stop()
		defer close(ch)
		now := time.Now()
		for {
			if samp, err := h.Sample(ctx, now); err != nil {
				if ctx.Err() != nil {
					return
				}
				h.log.Warn("cpu sampling cycle failed", "error", err)
			} else {
				select {
				case ch <- samp:
				case <-ctx.Done():
					return
				}
			}
			select {
			case now = <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Sample runs a single cycle. Load averages are best effort.
func (h *Harvester) Sample(ctx context.Context, now time.Time) (model.Sample, error) {
	recs, err := h.cpu.Sample(ctx)
	if err != nil {
		return model.Sample{}, err
	}
	samp := model.Sample{
		Timestamp: now,
		Interval:  h.Interval,
		CPU:       recs,
	}
	if avg, err := h.load(ctx); err == nil && avg != nil {
		samp.Load = model.Load{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	} else if err != nil {
		h.log.Debug("load average unavailable", "error", err)
	}
	return samp, nil
}
