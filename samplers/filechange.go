package samplers

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/sequence"
)

// FileChange returns a sampler that flushes whenever the file at path is
// written or created. The watcher is set up during activation, so a
// missing directory or exhausted watch descriptors surface as a wiring
// fault. The parent directory is watched rather than the file itself, so
// atomic rename-into-place updates are observed too.
func FileChange[T any](path string) bufwin.Sampler[T] {
	return bufwin.SamplerFunc[T](func(upstream sequence.Sequence[T], app bufwin.AppendFunc[T], flush bufwin.FlushFunc[T]) (sequence.Sequence[[]T], error) {
		if path == "" {
			return nil, errors.New("samplers: empty watch path")
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, err
		}
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			watcher.Close()
			return nil, err
		}

		var closeWatcher sync.Once
		release := func() {
			closeWatcher.Do(func() { watcher.Close() })
		}

		var ctrl *sequence.Controller[[]T]
		var sub sequence.Subscription
		ctrl = sequence.NewController[[]T](sequence.Hooks{
			OnListen: func() {
				sub = upstream.Listen(sequence.Handlers[T]{
					OnItem:  func(item T) { app(item) },
					OnError: ctrl.Fail,
					OnDone: func() {
						release()
						ctrl.Close()
					},
				})
				go func() {
					for {
						select {
						case ev, ok := <-watcher.Events:
							if !ok {
								return
							}
							if ev.Name != abs {
								continue
							}
							if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
								continue
							}
							if snapshot := flush(0); snapshot != nil {
								ctrl.Add(snapshot)
							}
						case werr, ok := <-watcher.Errors:
							if !ok {
								return
							}
							ctrl.Fail(werr)
						}
					}
				}()
			},
			OnPause:  func() { pause(sub) },
			OnResume: func() { resume(sub) },
			OnCancel: func() {
				release()
				cancel(sub)
			},
		})
		return ctrl, nil
	})
}
