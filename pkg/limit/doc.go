/*
Package limit provides pure debounce and throttle state machines for
rate-limiting streams of events.

A Limiter decides, for a stream of pushed payloads and timer callbacks,
which payloads are ultimately delivered to a consumer and when. It is a
plain value with no timers, goroutines, or I/O: every operation returns
an updated Limiter plus an Effect describing what the host should do
(dispatch a message now, schedule one for later, or nothing). The actual
waiting happens in the host's scheduler, outside the core.

Basic usage:

	lim := limit.Debounce(tag, 300*time.Millisecond)

	lim, eff := lim.Push("hello")
	// eff asks the host to schedule a settle check after 300ms

	lim, eff = lim.Update(limit.EmitIfSettled[string](1))
	// if no push arrived in between, eff dispatches Emit("hello")

Debounce vs Throttle:

	// Debounce: emit only the most recent payload of a burst, once the
	// stream has been quiet for the cooldown. Nothing is emitted while
	// pushes keep arriving.
	lim := limit.Debounce(tag, 300*time.Millisecond)

	// Throttle: emit the first payload of a burst immediately, then drop
	// everything until the interval has elapsed.
	lim := limit.Throttle(tag, time.Second)

Stale timers:

No timer cancellation is assumed to exist. A superseded debounce timer is
not cancelled; it fires and is detected as stale by comparing the pending
count recorded at schedule time against the current count. Likewise a
throttle Reopen is idempotent, so redundant in-flight reopen timers are
harmless. Any number of stale callbacks can be outstanding without
corrupting state.

Message protocol:

The host-supplied callback wraps internal messages (Msg) into the host's
own message type so scheduled messages can be routed back through the
host's update loop. Unexpected or out-of-order messages never fail: every
combination of message, state, and mode that the transition rules do not
explicitly cover resolves to the identity transition with no effect.

Ownership:

One Limiter instance per rate-limited event stream, owned by the host's
long-lived state and threaded by value through Push and Update. A Limiter
must not be mutated concurrently; serialization is the host's job (see
pkg/loop for a ready-made single-goroutine host).
*/
package limit
