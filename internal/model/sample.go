package model

import "time"

// Load holds the 1, 5 and 15 minute load averages.
type Load struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Sample is the snapshot exchanged between harvester, UI, and JSON exporter.
type Sample struct {
	Timestamp time.Time     `json:"timestamp"`
	Interval  time.Duration `json:"interval"`
	CPU       []CPURecord   `json:"cpu"`
	Load      Load          `json:"load"`
}

// Zero returns an empty sample for initialization.
func Zero() Sample { return Sample{Timestamp: time.Now()} }
