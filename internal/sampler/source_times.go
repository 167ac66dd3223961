package sampler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// TimesSource reads counters through gopsutil, which works on every
// platform gopsutil supports.
type TimesSource struct {
	times func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error)
}

func NewTimesSource() *TimesSource {
	return &TimesSource{times: cpu.TimesWithContext}
}

func (s *TimesSource) Cores(ctx context.Context) ([]CoreReading, error) {
	stats, err := s.times(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("cpu times: %w", err)
	}
	byID := make(map[int]model.CounterSnapshot, len(stats))
	for i, st := range stats {
		id, ok := cpuNumber(st.CPU)
		if !ok {
			id = i
		}
		byID[id] = fromTimesStat(st)
	}
	return alignCores(byID), nil
}

func (s *TimesSource) Aggregate(ctx context.Context) (model.CounterSnapshot, error) {
	stats, err := s.times(ctx, false)
	if err != nil {
		return model.CounterSnapshot{}, fmt.Errorf("cpu times: %w", err)
	}
	if len(stats) == 0 {
		return model.CounterSnapshot{}, ErrNoCores
	}
	return fromTimesStat(stats[0]), nil
}

// cpuNumber parses names like "cpu7".
func cpuNumber(name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "cpu"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func fromTimesStat(t cpu.TimesStat) model.CounterSnapshot {
	working := t.User + t.Nice + t.System + t.Irq + t.Softirq + t.Steal
	return model.CounterSnapshot{Working: working, Total: working + t.Idle + t.Iowait}
}
