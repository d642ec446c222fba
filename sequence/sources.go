package sequence

import (
	"sync"
	"time"
)

// FromSlice returns a cold sequence that delivers the items in order and
// then completes. Delivery starts synchronously when the listener attaches.
func FromSlice[T any](items []T) Sequence[T] {
	var c *Controller[T]
	c = NewController[T](Hooks{
		OnListen: func() {
			for _, item := range items {
				c.Add(item)
			}
			c.Close()
		},
	})
	return c
}

// Empty returns a sequence that completes immediately on listen.
func Empty[T any]() Sequence[T] {
	var c *Controller[T]
	c = NewController[T](Hooks{
		OnListen: func() { c.Close() },
	})
	return c
}

// Fail returns a sequence that delivers err on listen and then completes.
func Fail[T any](err error) Sequence[T] {
	var c *Controller[T]
	c = NewController[T](Hooks{
		OnListen: func() {
			c.Fail(err)
			c.Close()
		},
	})
	return c
}

// FromChannel bridges a Go channel into a sequence. The bridge goroutine
// starts on listen, completes the sequence when ch is closed, and stops on
// cancel. Items received after cancel are dropped, not redelivered.
func FromChannel[T any](ch <-chan T) Sequence[T] {
	var c *Controller[T]
	stop := make(chan struct{})
	var once sync.Once
	c = NewController[T](Hooks{
		OnListen: func() {
			go func() {
				for {
					select {
					case v, ok := <-ch:
						if !ok {
							c.Close()
							return
						}
						c.Add(v)
					case <-stop:
						return
					}
				}
			}()
		},
		OnCancel: func() {
			once.Do(func() { close(stop) })
		},
	})
	return c
}

// Periodic returns a sequence that emits the current time every interval.
// The ticker starts on listen and is released on cancel. The sequence
// never completes on its own.
func Periodic(interval time.Duration) Sequence[time.Time] {
	var c *Controller[time.Time]
	stop := make(chan struct{})
	var once sync.Once
	c = NewController[time.Time](Hooks{
		OnListen: func() {
			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case t := <-ticker.C:
						c.Add(t)
					case <-stop:
						return
					}
				}
			}()
		},
		OnCancel: func() {
			once.Do(func() { close(stop) })
		},
	})
	return c
}
