package sampler

import "github.com/Dicklesworthstone/cpumon/internal/model"

// Usage returns the percentage of time spent working between two snapshots.
//
// A negative working delta (counter reset) counts as zero. When the total has
// not advanced the denominator falls back to 1.0, so a nonzero working delta
// over a stalled total can exceed 100. The result is never capped.
func Usage(prev, curr model.CounterSnapshot) float64 {
	work := curr.Working - prev.Working
	if work < 0 {
		work = 0
	}
	total := curr.Total - prev.Total
	if total <= 0 {
		total = 1.0
	}
	return work * 100 / total
}
