package sampler

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesSourceCores(t *testing.T) {
	src := &TimesSource{times: func(_ context.Context, percpu bool) ([]cpu.TimesStat, error) {
		require.True(t, percpu)
		return []cpu.TimesStat{
			{CPU: "cpu0", User: 1, System: 1, Idle: 6, Iowait: 2},
			{CPU: "cpu2", User: 3, Nice: 1, Irq: 1, Softirq: 1, Steal: 1, Idle: 3},
		}, nil
	}}

	cores, err := src.Cores(context.Background())
	require.NoError(t, err)
	require.Len(t, cores, 3)
	assert.Equal(t, snap(2, 10), cores[0].Snapshot)
	assert.ErrorIs(t, cores[1].Err, ErrCoreOffline)
	assert.Equal(t, snap(7, 10), cores[2].Snapshot)
}

func TestTimesSourceAggregate(t *testing.T) {
	src := &TimesSource{times: func(_ context.Context, percpu bool) ([]cpu.TimesStat, error) {
		require.False(t, percpu)
		return []cpu.TimesStat{{CPU: "cpu-total", User: 5, Idle: 5}}, nil
	}}
	agg, err := src.Aggregate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap(5, 10), agg)

	src.times = func(context.Context, bool) ([]cpu.TimesStat, error) { return nil, nil }
	_, err = src.Aggregate(context.Background())
	assert.ErrorIs(t, err, ErrNoCores)
}

func TestTimesSourceBatchError(t *testing.T) {
	boom := errors.New("boom")
	src := &TimesSource{times: func(context.Context, bool) ([]cpu.TimesStat, error) { return nil, boom }}
	_, err := src.Cores(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCPUNumber(t *testing.T) {
	n, ok := cpuNumber("cpu12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = cpuNumber("cpu-total")
	assert.False(t, ok)
}
