package bufwin

import "github.com/bft-labs/bufwin/sequence"

// AppendFunc adds an item to the tail of the live buffer without emitting.
type AppendFunc[T any] func(item T)

// FlushFunc snapshots the live buffer, resets it, and returns the snapshot.
//
// The reset is full unless 0 < retainFrom < len(buffer), in which case the
// tail starting at retainFrom is retained, enabling overlapping windows.
// The returned snapshot is an independent copy; it is nil once the binding
// is closed, and samplers must not emit a nil snapshot.
type FlushFunc[T any] func(retainFrom int) []T

// Sampler decides when buffered items are appended versus flushed.
//
// Sample is invoked once per binding, on first listen. The sampler
// subscribes to upstream, calls append and flush as its strategy dictates,
// and emits every snapshot returned by flush on the subordinate sequence
// it returns. The engine forwards subordinate items verbatim downstream
// and forwards errors and completion from the subordinate sequence.
//
// Obligations: append and flush must never be invoked concurrently with
// themselves or each other; private timers, watchers and goroutines must
// be released when the subordinate subscription is cancelled; the buffer
// must not be referenced except through the two callbacks. A non-nil
// error from Sample aborts activation before any subscription exists.
type Sampler[T any] interface {
	Sample(upstream sequence.Sequence[T], append AppendFunc[T], flush FlushFunc[T]) (sequence.Sequence[[]T], error)
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc[T any] func(upstream sequence.Sequence[T], append AppendFunc[T], flush FlushFunc[T]) (sequence.Sequence[[]T], error)

// Sample implements Sampler.
func (f SamplerFunc[T]) Sample(upstream sequence.Sequence[T], append AppendFunc[T], flush FlushFunc[T]) (sequence.Sequence[[]T], error) {
	return f(upstream, append, flush)
}
