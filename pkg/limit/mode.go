package limit

import "time"

// mode is the closed sum of limiter configurations. Per-variant data lives
// on the variant: only debounce buffers payloads, so only debounceMode has
// a pending queue, and Closed+debounce stays unrepresentable in practice
// because debounce transitions never leave Open.
type mode[P any] interface {
	name() string
	delay() time.Duration
}

// debounceMode emits the most recent payload of a burst once the stream has
// been quiet for cooldown. pending is ordered most-recent-first.
type debounceMode[P any] struct {
	cooldown time.Duration
	pending  []P
}

func (m debounceMode[P]) name() string         { return "debounce" }
func (m debounceMode[P]) delay() time.Duration { return m.cooldown }

// throttleMode emits the first payload of a burst immediately, then drops
// payloads until interval has elapsed. Throttle never buffers.
type throttleMode[P any] struct {
	interval time.Duration
}

func (m throttleMode[P]) name() string         { return "throttle" }
func (m throttleMode[P]) delay() time.Duration { return m.interval }
