package samplers

import (
	"errors"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/sequence"
)

// Trigger returns a sampler that flushes on each emission of an
// independent notifier sequence. The notifier's item values are ignored;
// its errors surface on the downstream sequence, and its completion is
// ignored (the window stream ends with the upstream).
func Trigger[T, S any](notifier sequence.Sequence[S]) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if notifier == nil {
			return nil, errors.New("samplers: nil notifier")
		}
		var ctrl *sequence.Controller[[]T]
		var sub, nsub sequence.Subscription
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				nsub = notifier.Listen(sequence.Handlers[S]{
					OnItem: func(S) {
						if snapshot := flush(0); snapshot != nil {
							ctrl.Add(snapshot)
						}
					},
					OnError: ctrl.Fail,
				})
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem:  func(item T) { app(item) },
					OnError: ctrl.Fail,
					OnDone: func() {
						cancel(nsub)
						ctrl.Close()
					},
				})
			},
			OnPause: func() {
				pause(sub)
				pause(nsub)
			},
			OnResume: func() {
				resume(sub)
				resume(nsub)
			},
			OnCancel: func() {
				cancel(sub)
				cancel(nsub)
			},
		})
		return ctrl, nil
	})
}
