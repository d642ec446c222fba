package samplers

import (
	"fmt"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/sequence"
)

// Count returns a sampler that flushes after every n appended items.
// With exhaust-on-done enabled, a trailing partial window is emitted at
// upstream completion.
func Count[T any](n int) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if n <= 0 {
			return nil, fmt.Errorf("samplers: count must be positive, got %d", n)
		}
		var ctrl *sequence.Controller[[]T]
		var sub sequence.Subscription
		filled := 0
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem: func(item T) {
						app(item)
						filled++
						if filled == n {
							filled = 0
							if snapshot := flush(0); snapshot != nil {
								ctrl.Add(snapshot)
							}
						}
					},
					// The engine discards the buffer on an error, so the
					// fill counter starts over with it.
					OnError: func(err error) {
						filled = 0
						ctrl.Fail(err)
					},
					OnDone:  ctrl.Close,
				})
			},
			OnPause:  func() { pause(sub) },
			OnResume: func() { resume(sub) },
			OnCancel: func() { cancel(sub) },
		})
		return ctrl, nil
	})
}

// Sliding returns a sampler producing overlapping count windows: when the
// buffer reaches n items it is flushed retaining the last n-stride, so
// consecutive snapshots share n-stride items. stride must be in (0, n);
// Sliding(n, n) would be Count(n), use that instead.
func Sliding[T any](n, stride int) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if n <= 0 {
			return nil, fmt.Errorf("samplers: window size must be positive, got %d", n)
		}
		if stride <= 0 || stride >= n {
			return nil, fmt.Errorf("samplers: stride must be in (0, %d), got %d", n, stride)
		}
		var ctrl *sequence.Controller[[]T]
		var sub sequence.Subscription
		filled := 0
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem: func(item T) {
						app(item)
						filled++
						if filled == n {
							filled = n - stride
							if snapshot := flush(stride); snapshot != nil {
								ctrl.Add(snapshot)
							}
						}
					},
					OnError: func(err error) {
						filled = 0
						ctrl.Fail(err)
					},
					OnDone:  ctrl.Close,
				})
			},
			OnPause:  func() { pause(sub) },
			OnResume: func() { resume(sub) },
			OnCancel: func() { cancel(sub) },
		})
		return ctrl, nil
	})
}
