//go:build linux

package sampler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcfsSource(t *testing.T) {
	src, err := NewProcfsSource("testdata/proc")
	require.NoError(t, err)

	cores, err := src.Cores(context.Background())
	require.NoError(t, err)
	require.Len(t, cores, 4)

	assert.InDelta(t, 1.5, cores[0].Snapshot.Working, 1e-9)
	assert.InDelta(t, 10.0, cores[0].Snapshot.Total, 1e-9)
	assert.InDelta(t, 3.0, cores[1].Snapshot.Working, 1e-9)
	assert.InDelta(t, 11.0, cores[1].Snapshot.Total, 1e-9)
	assert.ErrorIs(t, cores[2].Err, ErrCoreOffline)
	assert.InDelta(t, 4.5, cores[3].Snapshot.Working, 1e-9)

	agg, err := src.Aggregate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 9.0, agg.Working, 1e-9)
	assert.InDelta(t, 34.0, agg.Total, 1e-9)
}

func TestProcfsSourceCancelled(t *testing.T) {
	src, err := NewProcfsSource("testdata/proc")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Cores(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProcfsSourceMissingMount(t *testing.T) {
	_, err := NewProcfsSource("testdata/does-not-exist")
	assert.Error(t, err)
}
