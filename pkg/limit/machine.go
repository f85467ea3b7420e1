package limit

// Push accepts a new payload from the event source and returns the updated
// limiter plus the effect the host should execute.
//
// Debounce: the payload is prepended to the pending queue and a settle
// check carrying the new queue length is scheduled after the cooldown.
// Nothing is emitted yet.
//
// Throttle: while open, the limiter closes, the payload is emitted
// immediately, and a Reopen is scheduled after the interval. While closed,
// the payload is dropped: no emission, no scheduling, no extra Reopen.
func (l Limiter[P, M]) Push(payload P) (Limiter[P, M], Effect[M]) {
	switch m := l.mode.(type) {
	case debounceMode[P]:
		if l.state != Open {
			// Unreachable by construction; debounce never closes.
			return l, None[M]()
		}
		pending := make([]P, 0, len(m.pending)+1)
		pending = append(pending, payload)
		pending = append(pending, m.pending...)
		l.mode = debounceMode[P]{cooldown: m.cooldown, pending: pending}
		return l, ScheduleAfter(l.callback(EmitIfSettled[P](len(pending))), m.cooldown)

	case throttleMode[P]:
		if l.state == Closed {
			return l, None[M]()
		}
		l.state = Closed
		return l, Dispatch(l.callback(Emit(payload))).
			And(ScheduleAfter(l.callback(Reopen[P]()), m.interval))
	}
	return l, None[M]()
}

// Update applies an internal protocol message delivered by the host loop
// and returns the updated limiter plus the effect to execute.
//
// EmitIfSettled fires a pending debounce check: if the pending count still
// equals the count recorded when the check was scheduled, the burst has
// settled, so the most recent payload is emitted and the queue cleared. A
// mismatch means a newer push already scheduled a later check; the stale
// check is ignored without touching any state.
//
// Reopen unconditionally opens the limiter, whatever its mode or state.
// Reopening an already-open limiter is a harmless no-op transition, which
// is what makes redundant in-flight reopen timers safe.
//
// Push routes to the Push method. Every other combination, including Emit
// and Noop, is the identity transition with no effect, so out-of-order or
// unexpected messages can never fail the host's update loop.
func (l Limiter[P, M]) Update(msg Msg[P]) (Limiter[P, M], Effect[M]) {
	switch msg.Kind {
	case KindPush:
		return l.Push(msg.Payload)

	case KindEmitIfSettled:
		m, ok := l.mode.(debounceMode[P])
		if !ok || l.state != Open {
			return l, None[M]()
		}
		if len(m.pending) == 0 || len(m.pending) != msg.Expected {
			// Stale check: a newer push scheduled its own, later-firing one.
			return l, None[M]()
		}
		head := m.pending[0]
		l.mode = debounceMode[P]{cooldown: m.cooldown}
		return l, Dispatch(l.callback(Emit(head)))

	case KindReopen:
		l.state = Open
		return l, None[M]()
	}
	return l, None[M]()
}
