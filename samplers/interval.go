package samplers

import (
	"fmt"
	"time"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/sequence"
)

// Every returns a sampler that flushes on a fixed wall-clock tick,
// independent of item arrival. A tick with an empty buffer emits an empty
// window; completion exhaust still skips empty buffers.
func Every[T any](interval time.Duration) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if interval <= 0 {
			return nil, fmt.Errorf("samplers: interval must be positive, got %v", interval)
		}
		var ctrl *sequence.Controller[[]T]
		var sub, tick sequence.Subscription
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				tick = sequence.Periodic(interval).Listen(sequence.Handlers[time.Time]{
					OnItem: func(time.Time) {
						if snapshot := flush(0); snapshot != nil {
							ctrl.Add(snapshot)
						}
					},
				})
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem:  func(item T) { app(item) },
					OnError: ctrl.Fail,
					OnDone: func() {
						cancel(tick)
						ctrl.Close()
					},
				})
			},
			OnPause: func() {
				pause(sub)
				pause(tick)
			},
			OnResume: func() {
				resume(sub)
				resume(tick)
			},
			OnCancel: func() {
				cancel(sub)
				cancel(tick)
			},
		})
		return ctrl, nil
	})
}
