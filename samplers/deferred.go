package samplers

import (
	"context"
	"errors"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/sequence"
)

// Deferred returns a sampler that flushes each time op completes, then
// reschedules it. op receives a context that is cancelled when the
// subscription is cancelled or the upstream completes; a non-nil error
// from op (other than the context's) surfaces as a sequence error.
func Deferred[T any](op func(ctx context.Context) error) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if op == nil {
			return nil, errors.New("samplers: nil deferred operation")
		}
		var ctrl *sequence.Controller[[]T]
		var sub sequence.Subscription
		ctx, stop := context.WithCancel(context.Background())
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem:  func(item T) { app(item) },
					OnError: ctrl.Fail,
					OnDone: func() {
						stop()
						ctrl.Close()
					},
				})
				go func() {
					for {
						err := op(ctx)
						if ctx.Err() != nil {
							return
						}
						if err != nil {
							ctrl.Fail(err)
							return
						}
						snapshot := flush(0)
						if snapshot == nil {
							return
						}
						ctrl.Add(snapshot)
					}
				}()
			},
			OnPause:  func() { pause(sub) },
			OnResume: func() { resume(sub) },
			OnCancel: func() {
				stop()
				cancel(sub)
			},
		})
		return ctrl, nil
	})
}
