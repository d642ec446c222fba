package samplers

import "github.com/bft-labs/bufwin/sequence"

// nil-safe subscription helpers. A sampler's upstream subscription may not
// exist yet when a hook fires during synchronous delivery.

func pause(sub sequence.Subscription) {
	if sub != nil {
		sub.Pause()
	}
}

func resume(sub sequence.Subscription) {
	if sub != nil {
		sub.Resume()
	}
}

func cancel(sub sequence.Subscription) {
	if sub != nil {
		sub.Cancel()
	}
}
