package loop

import (
	"fmt"
	"sync"
	"time"

	llerrors "github.com/7verdy/lustre-limiter/pkg/common/errors"
	"github.com/7verdy/lustre-limiter/pkg/limit"
	"github.com/7verdy/lustre-limiter/pkg/metrics"
)

// Config holds configuration options for creating a Loop.
type Config[P any] struct {
	// QueueSize is the capacity of the message queue. If 0, a default of
	// 64 is used.
	QueueSize int

	// Scheduler performs delayed message delivery. If nil, a
	// time.AfterFunc based scheduler is used.
	Scheduler Scheduler[limit.Msg[P]]
}

// Loop runs one limiter on a dedicated goroutine. It owns the single
// message queue: Push enqueues payload messages, scheduled messages
// re-enter through the same queue, and emitted payloads are handed to the
// sink. The loop is its own host, so the limiter's callback is the
// identity and messages round-trip unchanged. All limiter mutation happens
// sequentially on the loop goroutine.
type Loop[P any] struct {
	sink  func(P)
	msgs  chan limit.Msg[P]
	sched Scheduler[limit.Msg[P]]

	mu      sync.RWMutex
	limiter limit.Limiter[P, limit.Msg[P]]
	running bool
	closed  bool

	done    chan struct{}
	stopped chan struct{}

	// metrics state, managed in metrics.go
	name     string
	registry *metrics.Registry
	observed bool
}

// NewDebounce creates a loop around a debounce limiter: sink receives only
// the most recent payload of each burst, once the stream has been quiet
// for the cooldown.
func NewDebounce[P any](sink func(P), cooldown time.Duration) *Loop[P] {
	return NewDebounceWithConfig(sink, cooldown, Config[P]{})
}

// NewDebounceWithConfig creates a debounce loop with custom configuration.
func NewDebounceWithConfig[P any](sink func(P), cooldown time.Duration, config Config[P]) *Loop[P] {
	l := newLoop(sink, config)
	l.limiter = limit.Debounce(identity[P], cooldown)
	return l
}

// NewThrottle creates a loop around a throttle limiter: sink receives the
// first payload of each burst immediately, and the rest are dropped until
// the interval has elapsed.
func NewThrottle[P any](sink func(P), interval time.Duration) *Loop[P] {
	return NewThrottleWithConfig(sink, interval, Config[P]{})
}

// NewThrottleWithConfig creates a throttle loop with custom configuration.
func NewThrottleWithConfig[P any](sink func(P), interval time.Duration, config Config[P]) *Loop[P] {
	l := newLoop(sink, config)
	l.limiter = limit.Throttle(identity[P], interval)
	return l
}

func identity[P any](m limit.Msg[P]) limit.Msg[P] { return m }

func newLoop[P any](sink func(P), config Config[P]) *Loop[P] {
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	l := &Loop[P]{
		sink:    sink,
		msgs:    make(chan limit.Msg[P], queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	l.sched = config.Scheduler
	if l.sched == nil {
		l.sched = newTimerScheduler(l.Deliver)
	}
	return l
}

// Start launches the loop goroutine. It returns an error if the loop is
// already running or has been stopped.
func (l *Loop[P]) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return llerrors.ErrClosed
	}
	if l.running {
		return fmt.Errorf("loop already running, call Stop() first")
	}

	l.running = true
	go l.run()
	return nil
}

// Stop shuts the loop down. No further pushes are accepted; messages still
// in flight from the scheduler are discarded. The returned channel closes
// once the loop goroutine has exited. Stopping twice is safe.
func (l *Loop[P]) Stop() <-chan struct{} {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.done)
		if !l.running {
			// Never started; nothing else will close stopped.
			close(l.stopped)
		}
		l.running = false
	}
	l.mu.Unlock()

	return l.stopped
}

// Push hands a new payload to the limiter. It does not block: if the queue
// is at capacity it returns ErrQueueFull, and after Stop it returns
// ErrClosed.
func (l *Loop[P]) Push(payload P) error {
	select {
	case <-l.done:
		return llerrors.ErrClosed
	default:
	}

	select {
	case l.msgs <- limit.Push(payload):
		return nil
	case <-l.done:
		return llerrors.ErrClosed
	default:
		return llerrors.ErrQueueFull
	}
}

// State returns the limiter's current state.
func (l *Loop[P]) State() limit.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.limiter.State()
}

// Mode returns the limiter's mode name, "debounce" or "throttle".
func (l *Loop[P]) Mode() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.limiter.Mode()
}

// Delay returns the limiter's cooldown or interval.
func (l *Loop[P]) Delay() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.limiter.Delay()
}

// PendingLen returns the number of payloads buffered while a debounce
// burst settles.
func (l *Loop[P]) PendingLen() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiter.Pending())
}

// QueueDepth returns the number of messages waiting in the queue.
func (l *Loop[P]) QueueDepth() int {
	return len(l.msgs)
}

// Deliver is the scheduler's path back into the queue. It blocks until the
// queue has room so scheduled messages are never lost while the loop is
// alive, and discards the message once the loop has stopped. Custom
// Scheduler implementations call this when their delay elapses.
func (l *Loop[P]) Deliver(msg limit.Msg[P]) {
	select {
	case l.msgs <- msg:
	case <-l.done:
	}
}

// run is the loop goroutine: it applies queued messages to the limiter one
// at a time and executes the resulting effects.
func (l *Loop[P]) run() {
	defer close(l.stopped)

	for {
		select {
		case <-l.done:
			return
		case msg := <-l.msgs:
			l.apply(msg)
		}
	}
}

// apply processes one message. Emissions are intercepted for the sink;
// everything else goes through the limiter's update. Immediate effect ops
// are applied inline, before the next queued message; delayed ops are
// handed to the scheduler.
func (l *Loop[P]) apply(msg limit.Msg[P]) {
	if msg.Kind == limit.KindEmit {
		l.observeEmission()
		l.sink(msg.Payload)
		return
	}

	l.mu.RLock()
	lim := l.limiter
	l.mu.RUnlock()

	stateBefore := lim.State()
	next, eff := lim.Update(msg)

	l.mu.Lock()
	l.limiter = next
	l.mu.Unlock()

	l.observeUpdate(msg, stateBefore, next, eff)

	for _, op := range eff.Ops() {
		switch op.Kind {
		case limit.OpDispatch:
			l.apply(op.Msg)
		case limit.OpSchedule:
			l.sched.ScheduleAfter(op.Msg, op.After)
		}
	}
}
