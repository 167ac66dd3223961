package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordName(t *testing.T) {
	assert.Equal(t, "AVG", AverageRecord(12).Name())
	assert.Equal(t, "CPU3", CoreRecord(3, 0).Name())
}

func TestAverageRecordEncodesNullIndex(t *testing.T) {
	b, err := json.Marshal(AverageRecord(42.5))
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"AVG","index":null,"usage_percent":42.5}`, string(b))

	b, err = json.Marshal(CoreRecord(0, 1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"CPU","index":0,"usage_percent":1}`, string(b))
}

func TestPriorStateEmpty(t *testing.T) {
	var p PriorState
	assert.True(t, p.Empty())
	p.Cores = append(p.Cores, Baseline{})
	assert.False(t, p.Empty())
}
