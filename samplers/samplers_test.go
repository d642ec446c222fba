package samplers_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/samplers"
	"github.com/bft-labs/bufwin/sequence"
)

func mustNew(t *testing.T, s bufwin.Sampler[int]) *bufwin.Transformer[int] {
	t.Helper()
	tr, err := bufwin.New(s)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return tr
}

func TestTriggerFlushesOnNotifier(t *testing.T) {
	up := sequence.NewController[int](sequence.Hooks{})
	note := sequence.NewController[struct{}](sequence.Hooks{})
	tr := mustNew(t, samplers.Trigger[int, struct{}](note))

	var windows [][]int
	doneCalled := false
	tr.Bind(up).Listen(sequence.Handlers[[]int]{
		OnItem: func(w []int) { windows = append(windows, w) },
		OnDone: func() { doneCalled = true },
	})

	up.Add(1)
	up.Add(2)
	note.Add(struct{}{})
	up.Add(3)
	note.Add(struct{}{})
	note.Add(struct{}{}) // nothing buffered: empty window
	up.Close()

	want := [][]int{{1, 2}, {3}, {}}
	if !reflect.DeepEqual(windows, want) {
		t.Fatalf("expected %v, got %v", want, windows)
	}
	if !doneCalled {
		t.Fatalf("expected completion with upstream")
	}

	// The notifier subscription was cancelled with the upstream.
	note.Add(struct{}{})
	if len(windows) != 3 {
		t.Fatalf("expected no windows after completion, got %v", windows)
	}
}

func TestDeferredFlushesOnCompletion(t *testing.T) {
	release := make(chan struct{}, 1)
	op := func(ctx context.Context) error {
		select {
		case <-release:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	up := sequence.NewController[int](sequence.Hooks{})
	tr := mustNew(t, samplers.Deferred[int](op))

	windowCh := make(chan []int, 8)
	doneCh := make(chan struct{})
	tr.Bind(up).Listen(sequence.Handlers[[]int]{
		OnItem: func(w []int) { windowCh <- w },
		OnDone: func() { close(doneCh) },
	})

	up.Add(1)
	up.Add(2)
	release <- struct{}{}

	select {
	case w := <-windowCh:
		if !reflect.DeepEqual(w, []int{1, 2}) {
			t.Fatalf("expected [1 2], got %v", w)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deferred flush")
	}

	up.Close()
	select {
	case <-doneCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for completion")
	}
}

func TestEveryFlushesOnTicks(t *testing.T) {
	up := sequence.NewController[int](sequence.Hooks{})
	tr := mustNew(t, samplers.Every[int](20*time.Millisecond))

	windowCh := make(chan []int, 64)
	doneCh := make(chan struct{})
	tr.Bind(up).Listen(sequence.Handlers[[]int]{
		OnItem: func(w []int) { windowCh <- w },
		OnDone: func() { close(doneCh) },
	})

	up.Add(1)
	up.Add(2)

	// Ticks racing the adds may produce empty or partial windows first;
	// wait until everything buffered so far has been flushed.
	seen := make([]int, 0, 2)
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case w := <-windowCh:
			seen = append(seen, w...)
		case <-deadline:
			t.Fatalf("timed out waiting for interval flushes, saw %v", seen)
		}
	}
	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Fatalf("expected items [1 2] across windows, got %v", seen)
	}

	up.Close()
	select {
	case <-doneCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for completion")
	}
}

func TestFileChangeFlushesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trigger.txt")

	up := sequence.NewController[int](sequence.Hooks{})
	tr := mustNew(t, samplers.FileChange[int](path))

	windowCh := make(chan []int, 8)
	doneCh := make(chan struct{})
	tr.Bind(up).Listen(sequence.Handlers[[]int]{
		OnItem: func(w []int) { windowCh <- w },
		OnDone: func() { close(doneCh) },
	})

	up.Add(1)
	up.Add(2)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write trigger file: %v", err)
	}

	deadline := time.After(5 * time.Second)
	seen := make([]int, 0, 2)
	for len(seen) < 2 {
		select {
		case w := <-windowCh:
			seen = append(seen, w...)
		case <-deadline:
			t.Fatalf("timed out waiting for file-change flush, saw %v", seen)
		}
	}
	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Fatalf("expected items [1 2], got %v", seen)
	}

	up.Close()
	select {
	case <-doneCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for completion")
	}
}

func TestSamplerValidation(t *testing.T) {
	noopAppend := func(int) {}
	noopFlush := func(int) []int { return nil }
	up := sequence.Empty[int]()

	cases := []struct {
		name    string
		sampler bufwin.Sampler[int]
	}{
		{"zero count", samplers.Count[int](0)},
		{"negative count", samplers.Count[int](-1)},
		{"zero sliding stride", samplers.Sliding[int](3, 0)},
		{"stride not below size", samplers.Sliding[int](3, 3)},
		{"zero interval", samplers.Every[int](0)},
		{"nil predicate", samplers.When[int](nil)},
		{"nil deferred op", samplers.Deferred[int](nil)},
		{"nil notifier", samplers.Trigger[int, int](nil)},
		{"empty watch path", samplers.FileChange[int]("")},
	}
	for _, tc := range cases {
		if _, err := tc.sampler.Sample(up, noopAppend, noopFlush); err == nil {
			t.Fatalf("%s: expected a wiring error", tc.name)
		}
	}
}
