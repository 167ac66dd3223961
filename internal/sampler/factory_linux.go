//go:build linux

package sampler

const defaultSource = SourceProcfs

func newProcfsSource(root string) (CounterSource, error) {
	return NewProcfsSource(root)
}
