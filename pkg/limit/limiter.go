package limit

import (
	"time"

	"github.com/7verdy/lustre-limiter/pkg/common/validation"
)

// State reports whether a limiter is accepting new payloads.
type State int

const (
	// Open means the limiter accepts new payloads normally.
	Open State = iota

	// Closed means the limiter is suppressing new payloads. Only throttle
	// transitions produce Closed; every closed interval has exactly one
	// outstanding Reopen scheduled.
	Closed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Limiter is a debounce or throttle state machine over payloads of type P.
// The callback wraps internal protocol messages into the host's message
// type M so scheduled messages can be routed back through the host loop.
//
// A Limiter is a value: Push and Update return an updated copy together
// with an Effect for the host to execute. One instance per rate-limited
// stream; never mutate one concurrently.
type Limiter[P, M any] struct {
	callback func(Msg[P]) M
	mode     mode[P]
	state    State
}

// Debounce creates an open limiter that emits only the most recent payload
// of a burst, once no push has arrived for the cooldown. Pure constructor:
// no validation, no side effects. A negative cooldown is accepted and simply
// produces immediate scheduling; use DebounceSafe to reject it.
func Debounce[P, M any](callback func(Msg[P]) M, cooldown time.Duration) Limiter[P, M] {
	return Limiter[P, M]{
		callback: callback,
		mode:     debounceMode[P]{cooldown: cooldown},
		state:    Open,
	}
}

// Throttle creates an open limiter that emits the first payload of a burst
// immediately and drops the rest until the interval has elapsed. Pure
// constructor: no validation, no side effects.
func Throttle[P, M any](callback func(Msg[P]) M, interval time.Duration) Limiter[P, M] {
	return Limiter[P, M]{
		callback: callback,
		mode:     throttleMode[P]{interval: interval},
		state:    Open,
	}
}

// DebounceSafe creates a debounce limiter, rejecting a nil callback or a
// negative cooldown with a ValidationError.
func DebounceSafe[P, M any](callback func(Msg[P]) M, cooldown time.Duration) (Limiter[P, M], error) {
	if callback == nil {
		return Limiter[P, M]{}, validation.ValidateNotNil("limit", "callback", nil)
	}
	if err := validation.ValidateNonNegativeDuration("limit", "cooldown", cooldown); err != nil {
		return Limiter[P, M]{}, err
	}
	return Debounce(callback, cooldown), nil
}

// ThrottleSafe creates a throttle limiter, rejecting a nil callback or a
// negative interval with a ValidationError.
func ThrottleSafe[P, M any](callback func(Msg[P]) M, interval time.Duration) (Limiter[P, M], error) {
	if callback == nil {
		return Limiter[P, M]{}, validation.ValidateNotNil("limit", "callback", nil)
	}
	if err := validation.ValidateNonNegativeDuration("limit", "interval", interval); err != nil {
		return Limiter[P, M]{}, err
	}
	return Throttle(callback, interval), nil
}

// State returns the limiter's current state.
func (l Limiter[P, M]) State() State {
	return l.state
}

// Mode returns the limiter's mode name, "debounce" or "throttle".
func (l Limiter[P, M]) Mode() string {
	return l.mode.name()
}

// Delay returns the limiter's timing parameter: the debounce cooldown or
// the throttle interval.
func (l Limiter[P, M]) Delay() time.Duration {
	return l.mode.delay()
}

// Pending returns a copy of the payloads buffered while a debounce burst
// settles, most recent first. Always empty for throttle.
func (l Limiter[P, M]) Pending() []P {
	if m, ok := l.mode.(debounceMode[P]); ok && len(m.pending) > 0 {
		out := make([]P, len(m.pending))
		copy(out, m.pending)
		return out
	}
	return nil
}
