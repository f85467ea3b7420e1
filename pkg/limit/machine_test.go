package limit

import (
	"testing"
	"time"

	"github.com/7verdy/lustre-limiter/internal/testutil"
)

// hostMsg is a stand-in for a host application's message type.
type hostMsg struct {
	inner Msg[string]
}

func tag(m Msg[string]) hostMsg {
	return hostMsg{inner: m}
}

// apply feeds a host message back into the limiter the way a host loop would.
func apply(l Limiter[string, hostMsg], m hostMsg) (Limiter[string, hostMsg], Effect[hostMsg]) {
	return l.Update(m.inner)
}

// singleOp asserts the effect holds exactly one operation and returns it.
func singleOp(t *testing.T, eff Effect[hostMsg]) Op[hostMsg] {
	t.Helper()
	ops := eff.Ops()
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	return ops[0]
}

func TestDebouncePushSchedulesSettleCheck(t *testing.T) {
	lim := Debounce(tag, 500*time.Millisecond)

	lim, eff := lim.Push("a")

	op := singleOp(t, eff)
	testutil.AssertEqual(t, op.Kind, OpSchedule)
	testutil.AssertEqual(t, op.After, 500*time.Millisecond)
	testutil.AssertEqual(t, op.Msg.inner.Kind, KindEmitIfSettled)
	testutil.AssertEqual(t, op.Msg.inner.Expected, 1)

	testutil.AssertEqual(t, lim.State(), Open)
	testutil.AssertEqual(t, len(lim.Pending()), 1)
}

func TestDebounceBurstEmitsMostRecentOnly(t *testing.T) {
	// push(A) at t=0, push(B) at t=100, cooldown 500: only B is emitted,
	// by the check scheduled at t=100.
	lim := Debounce(tag, 500*time.Millisecond)

	lim, effA := lim.Push("a")
	checkA := singleOp(t, effA).Msg

	lim, effB := lim.Push("b")
	checkB := singleOp(t, effB).Msg
	testutil.AssertEqual(t, checkB.inner.Expected, 2)

	// A's check fires at t=500 and sees two pending payloads: stale.
	lim, eff := apply(lim, checkA)
	if !eff.IsNone() {
		t.Fatal("stale check should produce no effect")
	}
	testutil.AssertEqual(t, len(lim.Pending()), 2)

	// B's check fires at t=600 and matches: emit B, clear the queue.
	lim, eff = apply(lim, checkB)
	op := singleOp(t, eff)
	testutil.AssertEqual(t, op.Kind, OpDispatch)
	testutil.AssertEqual(t, op.Msg.inner.Kind, KindEmit)
	testutil.AssertEqual(t, op.Msg.inner.Payload, "b")
	testutil.AssertEqual(t, len(lim.Pending()), 0)
}

func TestDebounceSinglePushEmitsAfterCooldown(t *testing.T) {
	lim := Debounce(tag, 250*time.Millisecond)

	lim, eff := lim.Push("only")
	check := singleOp(t, eff).Msg

	lim, eff = apply(lim, check)
	op := singleOp(t, eff)
	testutil.AssertEqual(t, op.Msg.inner.Kind, KindEmit)
	testutil.AssertEqual(t, op.Msg.inner.Payload, "only")
	testutil.AssertEqual(t, len(lim.Pending()), 0)
}

func TestDebounceStaleCheckMutatesNothing(t *testing.T) {
	lim := Debounce(tag, 100*time.Millisecond)
	lim, _ = lim.Push("a")
	lim, _ = lim.Push("b")

	for _, expected := range []int{0, 1, 3, 17} {
		next, eff := lim.Update(EmitIfSettled[string](expected))
		if !eff.IsNone() {
			t.Fatalf("EmitIfSettled(%d) with 2 pending should no-op", expected)
		}
		testutil.AssertEqual(t, next.State(), lim.State())
		testutil.AssertEqual(t, len(next.Pending()), len(lim.Pending()))
	}
}

func TestDebounceBurstsAreIndependent(t *testing.T) {
	lim := Debounce(tag, 100*time.Millisecond)

	lim, eff := lim.Push("first")
	lim, _ = apply(lim, singleOp(t, eff).Msg)

	// A fresh burst restarts the count at 1; the old burst's count no
	// longer matches anything.
	lim, eff = lim.Push("second")
	testutil.AssertEqual(t, singleOp(t, eff).Msg.inner.Expected, 1)

	lim, eff = apply(lim, singleOp(t, eff).Msg)
	testutil.AssertEqual(t, singleOp(t, eff).Msg.inner.Payload, "second")
	_ = lim
}

func TestDebounceEmissionCarriesMostRecent(t *testing.T) {
	// n pushes within the cooldown: exactly one emission, carrying the
	// payload of the last push.
	lim := Debounce(tag, time.Second)

	var lastCheck hostMsg
	payloads := []string{"p1", "p2", "p3", "p4", "p5"}
	checks := make([]hostMsg, 0, len(payloads))
	for _, p := range payloads {
		var eff Effect[hostMsg]
		lim, eff = lim.Push(p)
		lastCheck = singleOp(t, eff).Msg
		checks = append(checks, lastCheck)
	}

	emissions := 0
	var emitted string
	for _, check := range checks {
		var eff Effect[hostMsg]
		lim, eff = apply(lim, check)
		for _, op := range eff.Ops() {
			if op.Msg.inner.Kind == KindEmit {
				emissions++
				emitted = op.Msg.inner.Payload
			}
		}
	}

	testutil.AssertEqual(t, emissions, 1)
	testutil.AssertEqual(t, emitted, "p5")
}

func TestThrottleFirstPushEmitsImmediately(t *testing.T) {
	lim := Throttle(tag, 500*time.Millisecond)

	lim, eff := lim.Push("a")

	ops := eff.Ops()
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	testutil.AssertEqual(t, ops[0].Kind, OpDispatch)
	testutil.AssertEqual(t, ops[0].Msg.inner.Kind, KindEmit)
	testutil.AssertEqual(t, ops[0].Msg.inner.Payload, "a")
	testutil.AssertEqual(t, ops[1].Kind, OpSchedule)
	testutil.AssertEqual(t, ops[1].Msg.inner.Kind, KindReopen)
	testutil.AssertEqual(t, ops[1].After, 500*time.Millisecond)

	testutil.AssertEqual(t, lim.State(), Closed)
}

func TestThrottleClosedDropsPushes(t *testing.T) {
	lim := Throttle(tag, 500*time.Millisecond)
	lim, _ = lim.Push("a")

	for _, p := range []string{"b", "c", "d"} {
		var eff Effect[hostMsg]
		lim, eff = lim.Push(p)
		if !eff.IsNone() {
			t.Fatalf("push %q while closed should produce no effect", p)
		}
		testutil.AssertEqual(t, lim.State(), Closed)
	}
}

func TestThrottleCycle(t *testing.T) {
	// push(A) at t=0 emits A; push(B) at t=100 is dropped; Reopen at
	// t=500; push(C) at t=600 emits C.
	lim := Throttle(tag, 500*time.Millisecond)

	lim, eff := lim.Push("a")
	testutil.AssertEqual(t, eff.Ops()[0].Msg.inner.Payload, "a")

	lim, eff = lim.Push("b")
	if !eff.IsNone() {
		t.Fatal("push while closed should be dropped")
	}

	lim, eff = lim.Update(Reopen[string]())
	testutil.AssertEqual(t, lim.State(), Open)
	if !eff.IsNone() {
		t.Fatal("reopen should produce no effect")
	}

	lim, eff = lim.Push("c")
	testutil.AssertEqual(t, eff.Ops()[0].Msg.inner.Payload, "c")
	testutil.AssertEqual(t, lim.State(), Closed)
}

func TestReopenIsIdempotent(t *testing.T) {
	lim := Throttle(tag, time.Second)

	for i := 0; i < 3; i++ {
		var eff Effect[hostMsg]
		lim, eff = lim.Update(Reopen[string]())
		testutil.AssertEqual(t, lim.State(), Open)
		if !eff.IsNone() {
			t.Fatal("reopening an open limiter should produce no effect")
		}
	}
}

func TestReopenIgnoresMode(t *testing.T) {
	lim := Debounce(tag, time.Second)
	lim, _ = lim.Push("a")

	next, eff := lim.Update(Reopen[string]())
	testutil.AssertEqual(t, next.State(), Open)
	testutil.AssertEqual(t, len(next.Pending()), 1)
	if !eff.IsNone() {
		t.Fatal("reopen should produce no effect")
	}
}

func TestUpdateUnexpectedMessagesAreIdentity(t *testing.T) {
	tests := []struct {
		name string
		lim  Limiter[string, hostMsg]
		msg  Msg[string]
	}{
		{"emit in debounce", Debounce(tag, time.Second), Emit("x")},
		{"emit in throttle", Throttle(tag, time.Second), Emit("x")},
		{"noop in debounce", Debounce(tag, time.Second), Noop[string]()},
		{"settle check in throttle", Throttle(tag, time.Second), EmitIfSettled[string](1)},
		{"settle check on empty queue", Debounce(tag, time.Second), EmitIfSettled[string](0)},
		{"unknown kind", Debounce(tag, time.Second), Msg[string]{Kind: MsgKind(99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, eff := tt.lim.Update(tt.msg)
			if !eff.IsNone() {
				t.Fatal("unexpected message should produce no effect")
			}
			testutil.AssertEqual(t, next.State(), tt.lim.State())
			testutil.AssertEqual(t, next.Mode(), tt.lim.Mode())
			testutil.AssertEqual(t, len(next.Pending()), len(tt.lim.Pending()))
		})
	}
}

func TestUpdateRoutesPush(t *testing.T) {
	lim := Throttle(tag, time.Second)

	lim, eff := lim.Update(Push("a"))
	testutil.AssertEqual(t, lim.State(), Closed)
	testutil.AssertEqual(t, len(eff.Ops()), 2)

	// Push delivered while closed resolves to identity.
	lim, eff = lim.Update(Push("b"))
	testutil.AssertEqual(t, lim.State(), Closed)
	if !eff.IsNone() {
		t.Fatal("push while closed should produce no effect")
	}
}

func TestZeroDelayIsAccepted(t *testing.T) {
	lim := Debounce(tag, 0)
	lim, eff := lim.Push("a")
	testutil.AssertEqual(t, singleOp(t, eff).After, time.Duration(0))

	lim, eff = apply(lim, singleOp(t, eff).Msg)
	testutil.AssertEqual(t, singleOp(t, eff).Msg.inner.Payload, "a")
}
