package sampler

import (
	"context"
	"sync"
	"time"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

type coreStep struct {
	cores []CoreReading
	err   error
}

type aggStep struct {
	snap model.CounterSnapshot
	err  error
}

// fakeSource replays scripted batches; the last step repeats once exhausted.
type fakeSource struct {
	mu        sync.Mutex
	coreSteps []coreStep
	aggSteps  []aggStep
	coreCalls int
	aggCalls  int
}

func (f *fakeSource) Cores(context.Context) ([]CoreReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.coreSteps[min(f.coreCalls, len(f.coreSteps)-1)]
	f.coreCalls++
	return st.cores, st.err
}

func (f *fakeSource) Aggregate(context.Context) (model.CounterSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.aggSteps[min(f.aggCalls, len(f.aggSteps)-1)]
	f.aggCalls++
	return st.snap, st.err
}

func (f *fakeSource) pushCores(cores ...CoreReading) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coreSteps = append(f.coreSteps, coreStep{cores: cores})
}

func (f *fakeSource) pushCoreErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coreSteps = append(f.coreSteps, coreStep{err: err})
}

func (f *fakeSource) pushAgg(s model.CounterSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggSteps = append(f.aggSteps, aggStep{snap: s})
}

func (f *fakeSource) pushAggErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggSteps = append(f.aggSteps, aggStep{err: err})
}

func ok(s model.CounterSnapshot) CoreReading { return CoreReading{Snapshot: s} }

func failed(err error) CoreReading { return CoreReading{Err: err} }

// recordingWait stands in for the bootstrap sleep.
type recordingWait struct {
	waits []time.Duration
}

func (w *recordingWait) wait(ctx context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)
	return ctx.Err()
}

func newTestDelta(src CounterSource, showAverage bool) (*DeltaSampler, *recordingWait) {
	s := NewDeltaSampler(src, Options{ShowAverage: showAverage})
	w := &recordingWait{}
	s.wait = w.wait
	return s, w
}
