package samplers

import (
	"errors"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/sequence"
)

// When returns a sampler that appends every item and flushes whenever pred
// holds for the item just appended, so the matching item closes its window.
func When[T any](pred func(item T) bool) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if pred == nil {
			return nil, errors.New("samplers: nil predicate")
		}
		var ctrl *sequence.Controller[[]T]
		var sub sequence.Subscription
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem: func(item T) {
						app(item)
						if pred(item) {
							if snapshot := flush(0); snapshot != nil {
								ctrl.Add(snapshot)
							}
						}
					},
					OnError: ctrl.Fail,
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
