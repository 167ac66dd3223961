package sampler

import "errors"

var (
	// ErrNoCores indicates that the counter source enumerated no cores at all.
	ErrNoCores = errors.New("sampler: no cpu cores reported")

	// ErrCoreOffline marks a core missing from an otherwise successful batch
	// read (a gap in the cpu numbering, e.g. a hot-unplugged core).
	ErrCoreOffline = errors.New("sampler: core offline")

	// ErrUnknownSource indicates an unrecognized source name.
	ErrUnknownSource = errors.New("sampler: unknown source")

	// ErrUnsupportedSource indicates a source that this build target cannot provide.
	ErrUnsupportedSource = errors.New("sampler: source not supported on this platform")
)
