// Package samplers provides ready-made bufwin.Sampler strategies:
//
//   - Count: flush after every nth appended item
//   - Sliding: count windows with partial tail retention (overlapping)
//   - Every: flush on a fixed wall-clock tick, independent of arrival
//   - When: flush when an item satisfies a predicate (item included)
//   - Deferred: flush on completion of an asynchronous operation,
//     rescheduled after each flush
//   - Trigger: flush on each emission of an independent sequence
//   - FileChange: flush when a watched file is written (fsnotify)
//
// Every sampler validates its parameters inside Sample, so invalid
// configuration surfaces as a wiring fault on the downstream sequence.
// All samplers forward pause, resume and cancel to the subscriptions they
// own and release their timers, goroutines and watchers on cancel.
package samplers
