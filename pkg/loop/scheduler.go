package loop

import "time"

// Scheduler delivers messages into a loop's queue after a delay. It is
// fire-and-forget: no handle is returned and nothing can be cancelled. The
// contract is to deliver each message exactly once, after at least the
// requested delay. No ordering is guaranteed across different delays.
type Scheduler[M any] interface {
	ScheduleAfter(msg M, delay time.Duration)
}

// timerScheduler implements Scheduler on time.AfterFunc, delivering into
// the loop through the deliver func. Deliveries after the loop has stopped
// are discarded by deliver itself.
type timerScheduler[M any] struct {
	deliver func(M)
}

func newTimerScheduler[M any](deliver func(M)) *timerScheduler[M] {
	return &timerScheduler[M]{deliver: deliver}
}

func (s *timerScheduler[M]) ScheduleAfter(msg M, delay time.Duration) {
	// Non-positive delays fire at once, still off the loop goroutine so a
	// full queue cannot deadlock the loop against itself.
	time.AfterFunc(delay, func() {
		s.deliver(msg)
	})
}
