/*
Package loop provides a ready-made host runtime for the pure limiters in
pkg/limit: a single-goroutine message loop that owns one limiter value,
executes its effects through a fire-and-forget scheduler, and delivers
emitted payloads to a consumer callback.

Basic usage:

	l := loop.NewDebounce(func(q string) { search(q) }, 300*time.Millisecond)
	if err := l.Start(); err != nil {
		// handle error
	}
	defer func() { <-l.Stop() }()

	l.Push("go deb")
	l.Push("go debounce") // only this reaches search(), 300ms later

Throttling works the same way:

	l := loop.NewThrottle(handleClick, time.Second)

Configuration Options:

	config := loop.Config[string]{
		QueueSize: 256,            // message queue capacity
		Scheduler: customSched,    // custom delayed-delivery scheduler
	}
	l := loop.NewDebounceWithConfig(sink, 300*time.Millisecond, config)

Delivery model:

All limiter mutation happens on the loop goroutine, one message at a
time; Push only enqueues. Immediate effects are applied inline before the
next queued message; delayed effects go through the Scheduler, whose one
contract is to deliver the message into the queue exactly once, after at
least the requested delay. There is no cancellation: the limiter's
staleness checks make late deliveries harmless.

Metrics:

Loops can be instrumented with Prometheus metrics:

	l := loop.NewDebounceWithMetrics(sink, 300*time.Millisecond, "search")
*/
package loop
