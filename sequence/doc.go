// Package sequence provides minimal push-based sequence primitives:
// a single-listener Sequence with pause/resume/cancel subscriptions,
// a reentrancy-safe Controller for producers, and a handful of sources.
//
// Sequences are cold (work starts at Listen) and single-use. Delivery
// for one subscription is always serialized: handlers never run
// concurrently, events are delivered in the order they were produced,
// and nothing is delivered after cancellation or completion.
package sequence
