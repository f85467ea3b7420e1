package limit

import "time"

// OpKind identifies the variant of an effect operation.
type OpKind int

const (
	// OpDispatch delivers a message into the host loop immediately.
	OpDispatch OpKind = iota

	// OpSchedule delivers a message into the host loop after a delay.
	OpSchedule
)

// Op is a single effect operation. After is meaningful only for OpSchedule.
type Op[M any] struct {
	Kind  OpKind
	Msg   M
	After time.Duration
}

// Effect describes the host-side work a transition requested: zero or more
// dispatch and schedule operations. Effects are plain values; nothing runs
// until the host executes them.
type Effect[M any] struct {
	ops []Op[M]
}

// None returns an effect requesting no work.
func None[M any]() Effect[M] {
	return Effect[M]{}
}

// Dispatch returns an effect that delivers msg into the host loop immediately.
func Dispatch[M any](msg M) Effect[M] {
	return Effect[M]{ops: []Op[M]{{Kind: OpDispatch, Msg: msg}}}
}

// ScheduleAfter returns an effect that delivers msg into the host loop
// after at least the given delay.
func ScheduleAfter[M any](msg M, after time.Duration) Effect[M] {
	return Effect[M]{ops: []Op[M]{{Kind: OpSchedule, Msg: msg, After: after}}}
}

// And combines two effects into a batch, preserving order.
func (e Effect[M]) And(other Effect[M]) Effect[M] {
	if len(other.ops) == 0 {
		return e
	}
	if len(e.ops) == 0 {
		return other
	}
	ops := make([]Op[M], 0, len(e.ops)+len(other.ops))
	ops = append(ops, e.ops...)
	ops = append(ops, other.ops...)
	return Effect[M]{ops: ops}
}

// IsNone reports whether the effect requests no work.
func (e Effect[M]) IsNone() bool {
	return len(e.ops) == 0
}

// Ops returns the effect's operations in execution order.
func (e Effect[M]) Ops() []Op[M] {
	return e.ops
}
