//go:build linux

package sampler

import (
	"context"
	"fmt"

	"github.com/prometheus/procfs"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// ProcfsSource reads counters from /proc/stat. procfs scales ticks by
// USER_HZ, so values arrive in seconds.
type ProcfsSource struct {
	fs procfs.FS
}

// NewProcfsSource opens the proc filesystem at mountPoint ("" means /proc).
func NewProcfsSource(mountPoint string) (*ProcfsSource, error) {
	if mountPoint == "" {
		mountPoint = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, fmt.Errorf("opening procfs at %s: %w", mountPoint, err)
	}
	return &ProcfsSource{fs: fs}, nil
}

func (s *ProcfsSource) stat(ctx context.Context) (procfs.Stat, error) {
	if err := ctx.Err(); err != nil {
		return procfs.Stat{}, err
	}
	st, err := s.fs.Stat()
	if err != nil {
		return procfs.Stat{}, fmt.Errorf("reading stat: %w", err)
	}
	return st, nil
}

func (s *ProcfsSource) Cores(ctx context.Context) ([]CoreReading, error) {
	st, err := s.stat(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]model.CounterSnapshot, len(st.CPU))
	for id, c := range st.CPU {
		byID[int(id)] = fromProcfs(c)
	}
	return alignCores(byID), nil
}

func (s *ProcfsSource) Aggregate(ctx context.Context) (model.CounterSnapshot, error) {
	st, err := s.stat(ctx)
	if err != nil {
		return model.CounterSnapshot{}, err
	}
	return fromProcfs(st.CPUTotal), nil
}

func fromProcfs(c procfs.CPUStat) model.CounterSnapshot {
	working := c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal
	return model.CounterSnapshot{Working: working, Total: working + c.Idle + c.Iowait}
}
