/*
Package lustre provides timing-based event limiters for Go applications:
debounce and throttle state machines that sit between a high-frequency
event source (keystrokes, clicks) and a consumer that should only see a
settled or rate-capped subset of those events.

Core (pkg/limit):
  - limit: pure debounce/throttle state machines over an internal
    message protocol; no timers, no goroutines, no I/O

Host runtime (pkg/loop):
  - loop: single-goroutine message loop that owns a limiter value,
    runs its effects through a fire-and-forget scheduler, and delivers
    emissions to a consumer callback

Observability (pkg/metrics):
  - metrics: Prometheus instrumentation for limiter loops

Example usage:

	import "github.com/7verdy/lustre-limiter/pkg/loop"

	l := loop.NewDebounce(func(q string) { search(q) }, 300*time.Millisecond)
	l.Start()
	defer l.Stop()

	l.Push("go deb")
	l.Push("go debounce") // only this one reaches search(), 300ms later
*/
package lustre
