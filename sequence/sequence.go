package sequence

// Sequence is a push-based source of items. A sequence is cold: no work
// happens until Listen is called, and each sequence supports exactly one
// listener for its lifetime.
type Sequence[T any] interface {
	// Listen attaches the handlers and starts delivery.
	// Nil handlers are ignored. The returned Subscription controls
	// backpressure and teardown.
	Listen(h Handlers[T]) Subscription
}

// Handlers carries the listener callbacks for a subscription.
type Handlers[T any] struct {
	// OnItem is invoked once per delivered item.
	OnItem func(item T)

	// OnError is invoked for each error event.
	OnError func(err error)

	// OnDone is invoked once when the sequence completes normally.
	// It is not invoked after Cancel, nor after an error delivered
	// with CancelOnError set.
	OnDone func()

	// CancelOnError cancels the subscription immediately after the
	// first error event is delivered.
	CancelOnError bool
}

// Subscription controls an active listen.
//
// Calls may be made from handler callbacks; delivery for a subscription is
// always sequential, so handlers never run concurrently with each other.
type Subscription interface {
	// Pause suspends item delivery. Events produced while paused are
	// buffered in order. Pause is counted: delivery resumes only after
	// a matching number of Resume calls.
	Pause()

	// Resume undoes one Pause.
	Resume()

	// Cancel permanently stops delivery and releases producer
	// resources. Cancel is idempotent and synchronous: no handler is
	// invoked after it returns.
	Cancel()
}
