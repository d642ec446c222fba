package bufwin

import "errors"

// Errors returned by the public API. They can be checked with errors.Is.
var (
	// ErrNoSampler is returned by New when no sampler is supplied.
	ErrNoSampler = errors.New("bufwin: no sampler")

	// ErrSamplerWiring wraps an error returned by a Sampler during
	// activation. It is delivered as a single error event downstream,
	// followed by normal completion.
	ErrSamplerWiring = errors.New("bufwin: sampler wiring failed")
)
