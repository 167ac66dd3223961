package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// PercentSource supplies utilization already computed by the OS layer.
type PercentSource interface {
	PerCore(ctx context.Context) ([]float64, error)
	Global(ctx context.Context) (float64, error)
}

// GopsutilPercentSource reports gopsutil's percentages since its previous call.
type GopsutilPercentSource struct {
	percent func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
}

func NewGopsutilPercentSource() *GopsutilPercentSource {
	return &GopsutilPercentSource{percent: cpu.PercentWithContext}
}

func (s *GopsutilPercentSource) PerCore(ctx context.Context) ([]float64, error) {
	return s.percent(ctx, 0, true)
}

func (s *GopsutilPercentSource) Global(ctx context.Context) (float64, error) {
	v, err := s.percent(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, ErrNoCores
	}
	return v[0], nil
}

// PercentSampler passes OS percentages through. It keeps no prior state and
// takes the average from the OS global reading.
type PercentSampler struct {
	source      PercentSource
	showAverage bool
}

func NewPercentSampler(source PercentSource, showAverage bool) *PercentSampler {
	return &PercentSampler{source: source, showAverage: showAverage}
}

func (s *PercentSampler) Sample(ctx context.Context) ([]model.CPURecord, error) {
	cores, err := s.source.PerCore(ctx)
	if err != nil {
		return nil, fmt.Errorf("per-core cpu percent: %w", err)
	}
	if !s.showAverage {
		return assemble(nil, cores), nil
	}
	avg, err := s.source.Global(ctx)
	if err != nil {
		return nil, fmt.Errorf("global cpu percent: %w", err)
	}
	return assemble(&avg, cores), nil
}
