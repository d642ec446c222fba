package sequence

import (
	"errors"
	"testing"
)

func TestControllerDeliversInOrder(t *testing.T) {
	c := NewController[int](Hooks{})

	var got []int
	doneCalled := false
	c.Listen(Handlers[int]{
		OnItem: func(v int) { got = append(got, v) },
		OnDone: func() { doneCalled = true },
	})

	c.Add(1)
	c.Add(2)
	c.Add(3)
	c.Close()

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
	if !doneCalled {
		t.Fatalf("expected done to be delivered")
	}
}

func TestControllerBuffersBeforeListen(t *testing.T) {
	c := NewController[int](Hooks{})
	c.Add(1)
	c.Add(2)
	c.Close()

	var got []int
	doneCalled := false
	c.Listen(Handlers[int]{
		OnItem: func(v int) { got = append(got, v) },
		OnDone: func() { doneCalled = true },
	})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected buffered [1 2], got %v", got)
	}
	if !doneCalled {
		t.Fatalf("expected done after buffered events")
	}
}

func TestControllerOnListenHook(t *testing.T) {
	var c *Controller[int]
	c = NewController[int](Hooks{
		OnListen: func() {
			c.Add(7)
			c.Close()
		},
	})

	var got []int
	c.Listen(Handlers[int]{
		OnItem: func(v int) { got = append(got, v) },
	})

	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("expected synchronous delivery from OnListen, got %v", got)
	}
}

func TestControllerPauseBuffers(t *testing.T) {
	pauses, resumes := 0, 0
	c := NewController[int](Hooks{
		OnPause:  func() { pauses++ },
		OnResume: func() { resumes++ },
	})

	var got []int
	sub := c.Listen(Handlers[int]{
		OnItem: func(v int) { got = append(got, v) },
	})

	sub.Pause()
	c.Add(1)
	c.Add(2)
	if len(got) != 0 {
		t.Fatalf("expected no delivery while paused, got %v", got)
	}
	if pauses != 1 {
		t.Fatalf("expected one pause hook, got %d", pauses)
	}

	sub.Resume()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected buffered [1 2] after resume, got %v", got)
	}
	if resumes != 1 {
		t.Fatalf("expected one resume hook, got %d", resumes)
	}
}

func TestControllerPauseIsCounted(t *testing.T) {
	c := NewController[int](Hooks{})

	var got []int
	sub := c.Listen(Handlers[int]{
		OnItem: func(v int) { got = append(got, v) },
	})

	sub.Pause()
	sub.Pause()
	c.Add(1)
	sub.Resume()
	if len(got) != 0 {
		t.Fatalf("expected still paused after one resume, got %v", got)
	}
	sub.Resume()
	if len(got) != 1 {
		t.Fatalf("expected delivery after matching resumes, got %v", got)
	}
}

func TestControllerCancelFromHandler(t *testing.T) {
	cancelHook := false
	c := NewController[int](Hooks{
		OnCancel: func() { cancelHook = true },
	})

	var got []int
	var sub Subscription
	sub = c.Listen(Handlers[int]{
		OnItem: func(v int) {
			got = append(got, v)
			if len(got) == 2 {
				sub.Cancel()
			}
		},
	})

	c.Add(1)
	c.Add(2)
	c.Add(3)
	c.Close()

	if len(got) != 2 {
		t.Fatalf("expected delivery to stop after cancel, got %v", got)
	}
	if !cancelHook {
		t.Fatalf("expected OnCancel hook to fire")
	}
}

func TestControllerCancelOnError(t *testing.T) {
	boom := errors.New("boom")
	cancelHook := false
	c := NewController[int](Hooks{
		OnCancel: func() { cancelHook = true },
	})

	var gotErr error
	doneCalled := false
	c.Listen(Handlers[int]{
		OnError:       func(err error) { gotErr = err },
		OnDone:        func() { doneCalled = true },
		CancelOnError: true,
	})

	c.Fail(boom)
	c.Add(1)
	c.Close()

	if gotErr != boom {
		t.Fatalf("expected boom, got %v", gotErr)
	}
	if doneCalled {
		t.Fatalf("expected no done after cancel-on-error")
	}
	if !cancelHook {
		t.Fatalf("expected OnCancel hook after cancel-on-error")
	}
}

func TestControllerErrorWithoutCancelContinues(t *testing.T) {
	boom := errors.New("boom")
	c := NewController[int](Hooks{})

	var got []int
	var gotErr error
	doneCalled := false
	c.Listen(Handlers[int]{
		OnItem:  func(v int) { got = append(got, v) },
		OnError: func(err error) { gotErr = err },
		OnDone:  func() { doneCalled = true },
	})

	c.Add(1)
	c.Fail(boom)
	c.Add(2)
	c.Close()

	if gotErr != boom {
		t.Fatalf("expected boom, got %v", gotErr)
	}
	if len(got) != 2 {
		t.Fatalf("expected delivery to continue after error, got %v", got)
	}
	if !doneCalled {
		t.Fatalf("expected done after error without cancel-on-error")
	}
}

func TestControllerNoEventsAfterClose(t *testing.T) {
	c := NewController[int](Hooks{})

	var got []int
	c.Listen(Handlers[int]{
		OnItem: func(v int) { got = append(got, v) },
	})

	c.Add(1)
	c.Close()
	c.Add(2)

	if len(got) != 1 {
		t.Fatalf("expected events after close to be dropped, got %v", got)
	}
}

func TestControllerSecondListen(t *testing.T) {
	c := NewController[int](Hooks{})

	var first []int
	c.Listen(Handlers[int]{
		OnItem: func(v int) { first = append(first, v) },
	})

	var gotErr error
	doneCalled := false
	c.Listen(Handlers[int]{
		OnError: func(err error) { gotErr = err },
		OnDone:  func() { doneCalled = true },
	})

	if !errors.Is(gotErr, ErrAlreadyListening) {
		t.Fatalf("expected ErrAlreadyListening, got %v", gotErr)
	}
	if !doneCalled {
		t.Fatalf("expected immediate completion for second listener")
	}

	c.Add(1)
	if len(first) != 1 {
		t.Fatalf("expected first listener unaffected, got %v", first)
	}
}
