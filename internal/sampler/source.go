package sampler

import (
	"context"
	"fmt"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// CoreReading is one core's result inside a batch read. Err is set when only
// this core could not be read.
type CoreReading struct {
	Snapshot model.CounterSnapshot
	Err      error
}

// CounterSource yields cumulative CPU counters. Cores returns one reading per
// core in enumeration order; an error from either method fails the whole batch.
type CounterSource interface {
	Cores(ctx context.Context) ([]CoreReading, error)
	Aggregate(ctx context.Context) (model.CounterSnapshot, error)
}

// alignCores lays out readings keyed by cpu number as a dense slice. Missing
// numbers below the highest one become per-core ErrCoreOffline readings so
// that later cores keep their index.
func alignCores(byID map[int]model.CounterSnapshot) []CoreReading {
	n := 0
	for id := range byID {
		if id+1 > n {
			n = id + 1
		}
	}
	out := make([]CoreReading, n)
	for i := range out {
		s, ok := byID[i]
		if !ok {
			out[i].Err = fmt.Errorf("cpu%d: %w", i, ErrCoreOffline)
			continue
		}
		out[i].Snapshot = s
	}
	return out
}
