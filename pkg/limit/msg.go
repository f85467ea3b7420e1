package limit

// MsgKind identifies the variant of a Msg.
type MsgKind int

const (
	// KindNoop is a message with no meaning; it always no-ops.
	KindNoop MsgKind = iota

	// KindPush carries a new payload from the event source.
	KindPush

	// KindEmit asks the host to deliver a payload to the consumer.
	KindEmit

	// KindEmitIfSettled is a delayed settle check for a debounce burst.
	KindEmitIfSettled

	// KindReopen ends a throttle's closed interval.
	KindReopen
)

// String returns the name of the message kind.
func (k MsgKind) String() string {
	switch k {
	case KindNoop:
		return "noop"
	case KindPush:
		return "push"
	case KindEmit:
		return "emit"
	case KindEmitIfSettled:
		return "emit_if_settled"
	case KindReopen:
		return "reopen"
	default:
		return "unknown"
	}
}

// Msg is an internal protocol message exchanged between a Limiter and its
// host loop. Payload is meaningful for KindPush and KindEmit; Expected is
// meaningful for KindEmitIfSettled.
type Msg[P any] struct {
	Kind     MsgKind
	Payload  P
	Expected int
}

// Push builds a message carrying a new payload from the event source.
func Push[P any](payload P) Msg[P] {
	return Msg[P]{Kind: KindPush, Payload: payload}
}

// Emit builds a message asking the host to deliver payload to the consumer.
func Emit[P any](payload P) Msg[P] {
	return Msg[P]{Kind: KindEmit, Payload: payload}
}

// EmitIfSettled builds a delayed settle check. The check only emits if the
// limiter's pending count still equals expected when the check fires.
func EmitIfSettled[P any](expected int) Msg[P] {
	return Msg[P]{Kind: KindEmitIfSettled, Expected: expected}
}

// Reopen builds a message that ends a throttle's closed interval.
func Reopen[P any]() Msg[P] {
	return Msg[P]{Kind: KindReopen}
}

// Noop builds a message that has no effect.
func Noop[P any]() Msg[P] {
	return Msg[P]{Kind: KindNoop}
}
