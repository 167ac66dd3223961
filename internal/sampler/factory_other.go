//go:build !linux

package sampler

import "fmt"

const defaultSource = SourcePercent

func newProcfsSource(string) (CounterSource, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, SourceProcfs)
}
