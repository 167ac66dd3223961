package model

import "strconv"

// Record labels.
const (
	LabelAverage = "AVG"
	LabelCPU     = "CPU"
)

// CounterSnapshot is one cumulative time-in-state reading, in seconds.
// Working is user+nice+system+irq+softirq+steal; Total adds idle and iowait.
type CounterSnapshot struct {
	Working float64 `json:"working"`
	Total   float64 `json:"total"`
}

// CPURecord is a single utilization reading. Index is nil only for the AVG record.
type CPURecord struct {
	Label        string  `json:"label"`
	Index        *int    `json:"index"`
	UsagePercent float64 `json:"usage_percent"`
}

// AverageRecord builds the AVG record.
func AverageRecord(usage float64) CPURecord {
	return CPURecord{Label: LabelAverage, UsagePercent: usage}
}

// CoreRecord builds the record for core idx.
func CoreRecord(idx int, usage float64) CPURecord {
	return CPURecord{Label: LabelCPU, Index: &idx, UsagePercent: usage}
}

// Name returns "AVG" or "CPU<n>".
func (r CPURecord) Name() string {
	if r.Index == nil {
		return r.Label
	}
	return r.Label + strconv.Itoa(*r.Index)
}

// Baseline is a stored per-core snapshot. Seen is false until the core has
// been read successfully at least once.
type Baseline struct {
	Snapshot CounterSnapshot
	Seen     bool
}

// PriorState holds the previous cycle's counters, one slot per core in
// enumeration order plus the aggregate. It belongs to a single sampler.
type PriorState struct {
	Cores     []Baseline
	Aggregate *CounterSnapshot
}

// Empty reports whether no core has been recorded yet.
func (p *PriorState) Empty() bool { return len(p.Cores) == 0 }
