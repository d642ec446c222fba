// Package bufwin implements a windowing/buffering operator for push-based
// sequences. Items from an upstream sequence are grouped into ordered
// window snapshots, with the grouping boundaries decided by a pluggable
// Sampler strategy: by count, time, predicate, deferred operation, or
// external trigger (see the samplers package).
//
// Example usage:
//
//	tr, err := bufwin.New(samplers.Count[int](2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := tr.Bind(sequence.FromSlice([]int{1, 2, 3, 4}))
//	out.Listen(sequence.Handlers[[]int]{
//	    OnItem: func(window []int) { fmt.Println(window) },
//	})
//	// Output: [1 2] then [3 4]
package bufwin

import (
	"fmt"
	"sync"

	"github.com/bft-labs/bufwin/pkg/log"
	"github.com/bft-labs/bufwin/sequence"
)

// Transformer turns an upstream sequence of items into a downstream
// sequence of window snapshots, using its Sampler to decide boundaries.
// A Transformer is a reusable factory: each Bind creates an independent,
// single-use binding.
type Transformer[T any] struct {
	sampler Sampler[T]
	opts    options
}

// New creates a Transformer with the given sampler.
// Returns ErrNoSampler if sampler is nil; this is a configuration error
// raised before any subscription exists.
func New[T any](sampler Sampler[T], opts ...Option) (*Transformer[T], error) {
	if sampler == nil {
		return nil, ErrNoSampler
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Transformer[T]{sampler: sampler, opts: o}, nil
}

// Bind wires the transformer to an upstream sequence and returns the
// downstream sequence of window snapshots. The result is cold: upstream
// is not subscribed until the first listener attaches.
func (t *Transformer[T]) Bind(upstream sequence.Sequence[T]) sequence.Sequence[[]T] {
	return &binding[T]{
		sampler:  t.sampler,
		opts:     t.opts,
		upstream: upstream,
	}
}

type bindingState uint8

const (
	stateUnstarted bindingState = iota
	stateActive
	stateClosed
)

// binding is one activation of a Transformer against one upstream.
// It owns the live buffer; all mutation goes through append and flush.
type binding[T any] struct {
	sampler  Sampler[T]
	opts     options
	upstream sequence.Sequence[T]

	mu    sync.Mutex
	state bindingState
	buf   []T
	h     sequence.Handlers[[]T]
	sub   sequence.Subscription
}

// Listen implements sequence.Sequence. The first listen performs the
// irreversible unstarted-to-active transition and activates the sampler.
func (b *binding[T]) Listen(h sequence.Handlers[[]T]) sequence.Subscription {
	b.mu.Lock()
	if b.state != stateUnstarted {
		b.mu.Unlock()
		if h.OnError != nil {
			h.OnError(sequence.ErrAlreadyListening)
		}
		if !h.CancelOnError && h.OnDone != nil {
			h.OnDone()
		}
		return inertSubscription{}
	}
	b.state = stateActive
	b.h = h
	b.buf = nil
	b.mu.Unlock()

	b.opts.logger.Debug("binding activated")

	sub, err := b.sampler.Sample(b.upstream, b.append, b.flush)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrSamplerWiring, err)
		b.opts.logger.Error("sampler wiring failed", log.Err(err))
		b.mu.Lock()
		b.state = stateClosed
		b.buf = nil
		b.mu.Unlock()
		if h.OnError != nil {
			h.OnError(wrapped)
		}
		if h.OnDone != nil {
			h.OnDone()
		}
		return inertSubscription{}
	}

	ssub := sub.Listen(sequence.Handlers[[]T]{
		OnItem:        b.forward,
		OnError:       b.fail,
		OnDone:        b.done,
		CancelOnError: h.CancelOnError,
	})

	b.mu.Lock()
	b.sub = ssub
	b.mu.Unlock()
	return &bindingSub[T]{b: b}
}

// append adds an item to the live buffer. No-op once closed.
func (b *binding[T]) append(item T) {
	b.mu.Lock()
	if b.state == stateActive {
		b.buf = append(b.buf, item)
	}
	b.mu.Unlock()
}

// flush snapshots the buffer, resets it, and returns the snapshot.
// Retention applies only when 0 < retainFrom < len(buffer); any other
// value is a full reset. Returns nil once the binding is closed.
func (b *binding[T]) flush(retainFrom int) []T {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return nil
	}
	snapshot := make([]T, len(b.buf))
	copy(snapshot, b.buf)
	retained := 0
	if retainFrom > 0 && retainFrom < len(b.buf) {
		retained = len(b.buf) - retainFrom
		b.buf = append([]T(nil), b.buf[retainFrom:]...)
	} else {
		b.buf = b.buf[:0]
	}
	b.mu.Unlock()

	b.opts.logger.Debug("flush",
		log.Int("size", len(snapshot)),
		log.Int("retained", retained),
	)
	return snapshot
}

// forward emits a snapshot downstream while the binding is active.
func (b *binding[T]) forward(snapshot []T) {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return
	}
	h := b.h
	b.mu.Unlock()

	if h.OnItem != nil {
		h.OnItem(snapshot)
	}
}

// fail forwards a subordinate error downstream. The live buffer is
// discarded without emission; teardown follows the listener's
// cancel-on-error policy, applied by the subordinate subscription.
func (b *binding[T]) fail(err error) {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return
	}
	b.buf = b.buf[:0]
	h := b.h
	if h.CancelOnError {
		b.state = stateClosed
		b.buf = nil
	}
	b.mu.Unlock()

	b.opts.logger.Debug("upstream error", log.Err(err))
	if h.OnError != nil {
		h.OnError(err)
	}
}

// done applies the completion policy on natural upstream completion:
// at most one final flush when exhaust-on-done is enabled, then close.
func (b *binding[T]) done() {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return
	}
	var final []T
	if b.opts.exhaustOnDone && len(b.buf) > 0 {
		final = make([]T, len(b.buf))
		copy(final, b.buf)
	}
	b.state = stateClosed
	b.buf = nil
	h := b.h
	b.mu.Unlock()

	if final != nil && h.OnItem != nil {
		h.OnItem(final)
	}
	b.opts.logger.Debug("binding completed", log.Bool("exhausted", final != nil))
	if h.OnDone != nil {
		h.OnDone()
	}
}

// bindingSub is the downstream subscription. Pause and resume delegate
// directly to the subordinate subscription; the engine adds no queuing.
type bindingSub[T any] struct {
	b *binding[T]
}

func (s *bindingSub[T]) Pause() {
	if sub := s.b.subordinate(); sub != nil {
		sub.Pause()
	}
}

func (s *bindingSub[T]) Resume() {
	if sub := s.b.subordinate(); sub != nil {
		sub.Resume()
	}
}

func (s *bindingSub[T]) Cancel() {
	b := s.b
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return
	}
	b.state = stateClosed
	b.buf = nil
	sub := b.sub
	b.mu.Unlock()

	b.opts.logger.Debug("binding cancelled")
	if sub != nil {
		sub.Cancel()
	}
}

func (b *binding[T]) subordinate() sequence.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sub
}

// inertSubscription is handed out when no live binding exists.
type inertSubscription struct{}

func (inertSubscription) Pause()  {}
func (inertSubscription) Resume() {}
func (inertSubscription) Cancel() {}
