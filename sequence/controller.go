package sequence

import (
	"errors"
	"sync"
)

// ErrAlreadyListening is delivered to a second listener attaching to a
// single-use sequence. The original subscription is unaffected.
var ErrAlreadyListening = errors.New("sequence: already listening")

// Hooks give the producer side of a Controller lifecycle signals.
// All hooks are optional and are invoked outside the controller lock.
type Hooks struct {
	// OnListen fires once, when the listener attaches. Cold producers
	// start their work here.
	OnListen func()

	// OnPause fires when the subscription becomes paused.
	OnPause func()

	// OnResume fires when the last pause is released.
	OnResume func()

	// OnCancel fires when the subscription is cancelled, either
	// explicitly or by a CancelOnError teardown. Producers release
	// timers, watchers and goroutines here. It does not fire after
	// normal completion.
	OnCancel func()
}

type eventKind uint8

const (
	kindItem eventKind = iota
	kindError
	kindDone
)

type event[T any] struct {
	kind eventKind
	item T
	err  error
}

// Controller is a single-listener push source. Producers feed it with Add,
// Fail and Close from any goroutine; delivery to the listener is serialized
// and in order, so handlers never run concurrently for one subscription.
//
// Events arriving before Listen, or while the subscription is paused, are
// buffered. Nothing is delivered after Cancel or after the done event.
type Controller[T any] struct {
	mu          sync.Mutex
	hooks       Hooks
	h           Handlers[T]
	pending     []event[T]
	pauses      int
	listened    bool
	closed      bool
	canceled    bool
	dispatching bool
}

// NewController creates a controller with the given producer hooks.
func NewController[T any](hooks Hooks) *Controller[T] {
	return &Controller[T]{hooks: hooks}
}

// Add delivers an item to the listener. Dropped once the controller is
// closed or cancelled.
func (c *Controller[T]) Add(item T) {
	c.enqueue(event[T]{kind: kindItem, item: item})
}

// Fail delivers an error event to the listener. A nil err is ignored.
func (c *Controller[T]) Fail(err error) {
	if err == nil {
		return
	}
	c.enqueue(event[T]{kind: kindError, err: err})
}

// Close completes the sequence. Events enqueued after Close are dropped.
func (c *Controller[T]) Close() {
	c.enqueue(event[T]{kind: kindDone})
}

// Listen implements Sequence.
func (c *Controller[T]) Listen(h Handlers[T]) Subscription {
	c.mu.Lock()
	if c.listened {
		c.mu.Unlock()
		if h.OnError != nil {
			h.OnError(ErrAlreadyListening)
		}
		if !h.CancelOnError && h.OnDone != nil {
			h.OnDone()
		}
		return inertSubscription{}
	}
	c.listened = true
	c.h = h
	hook := c.hooks.OnListen
	c.mu.Unlock()

	if hook != nil {
		hook()
	}

	c.mu.Lock()
	if !c.canceled && !c.dispatching && c.pauses == 0 && len(c.pending) > 0 {
		c.dispatch()
	} else {
		c.mu.Unlock()
	}
	return &ctrlSub[T]{c: c}
}

func (c *Controller[T]) enqueue(ev event[T]) {
	c.mu.Lock()
	if c.closed || c.canceled {
		c.mu.Unlock()
		return
	}
	if ev.kind == kindDone {
		c.closed = true
	}
	c.pending = append(c.pending, ev)
	if c.listened && !c.dispatching && c.pauses == 0 {
		c.dispatch()
		return
	}
	c.mu.Unlock()
}

// dispatch drains the pending queue, invoking handlers with the lock
// released so that they may pause or cancel their own subscription.
// Called with c.mu held; returns with c.mu released.
func (c *Controller[T]) dispatch() {
	c.dispatching = true
	for !c.canceled && c.pauses == 0 && len(c.pending) > 0 {
		ev := c.pending[0]
		c.pending = c.pending[1:]
		h := c.h
		c.mu.Unlock()

		switch ev.kind {
		case kindItem:
			if h.OnItem != nil {
				h.OnItem(ev.item)
			}
		case kindError:
			if h.OnError != nil {
				h.OnError(ev.err)
			}
			if h.CancelOnError {
				c.cancel(true)
				return
			}
		case kindDone:
			if h.OnDone != nil {
				h.OnDone()
			}
			c.cancel(false)
			return
		}

		c.mu.Lock()
	}
	c.dispatching = false
	c.mu.Unlock()
}

func (c *Controller[T]) cancel(runHook bool) {
	c.mu.Lock()
	if c.canceled {
		c.mu.Unlock()
		return
	}
	c.canceled = true
	c.closed = true
	c.dispatching = false
	c.pending = nil
	hook := c.hooks.OnCancel
	c.mu.Unlock()

	if runHook && hook != nil {
		hook()
	}
}

type ctrlSub[T any] struct {
	c *Controller[T]
}

func (s *ctrlSub[T]) Pause() {
	c := s.c
	c.mu.Lock()
	if c.canceled {
		c.mu.Unlock()
		return
	}
	c.pauses++
	var hook func()
	if c.pauses == 1 {
		hook = c.hooks.OnPause
	}
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (s *ctrlSub[T]) Resume() {
	c := s.c
	c.mu.Lock()
	if c.canceled || c.pauses == 0 {
		c.mu.Unlock()
		return
	}
	c.pauses--
	var hook func()
	if c.pauses == 0 {
		hook = c.hooks.OnResume
	}
	c.mu.Unlock()

	if hook != nil {
		hook()
	}

	c.mu.Lock()
	if !c.canceled && !c.dispatching && c.pauses == 0 && len(c.pending) > 0 {
		c.dispatch()
		return
	}
	c.mu.Unlock()
}

func (s *ctrlSub[T]) Cancel() {
	s.c.cancel(true)
}

// inertSubscription is returned where no live subscription exists.
type inertSubscription struct{}

func (inertSubscription) Pause()  {}
func (inertSubscription) Resume() {}
func (inertSubscription) Cancel() {}
