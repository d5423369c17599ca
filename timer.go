package simplequi

import "time"

// Timer calls a handler at a fixed interval on the application loop. A
// running timer keeps the application alive.
type Timer struct {
	rt       *Runtime
	interval time.Duration
	handler  func()

	running bool
	next    time.Time
}

// CreateTimer returns a stopped timer that calls handler every interval once
// Start is called.
func (rt *Runtime) CreateTimer(interval time.Duration, handler func()) *Timer {
	if interval <= 0 {
		panic("simplequi: timer interval must be positive")
	}
	if handler == nil {
		panic("simplequi: timer handler must not be nil")
	}
	return &Timer{rt: rt, interval: interval, handler: handler}
}

// Start begins periodic firing. Starting a running timer has no effect.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.next = t.rt.now().Add(t.interval)
	t.rt.timers = append(t.rt.timers, t)
	t.rt.track(t)
}

// Stop halts firing. The application may exit afterwards if nothing else
// keeps it alive.
func (t *Timer) Stop() {
	if t.running {
		t.running = false
		t.rt.removeTimer(t)
	}
	t.rt.untrack(t)
}

// IsRunning reports whether the timer is currently firing.
func (t *Timer) IsRunning() bool {
	return t.running
}

func (rt *Runtime) removeTimer(t *Timer) {
	for i, x := range rt.timers {
		if x == t {
			rt.timers = append(rt.timers[:i], rt.timers[i+1:]...)
			return
		}
	}
}

// fireTimers runs every timer whose deadline has passed. Handlers run on the
// loop and may start or stop timers freely; firing walks a snapshot so the
// set can change underneath. A stall longer than one interval fires a single
// coalesced call and realigns the deadline rather than bursting to catch up.
func (rt *Runtime) fireTimers(now time.Time) {
	rt.fireBuf = append(rt.fireBuf[:0], rt.timers...)
	for _, t := range rt.fireBuf {
		if !t.running || now.Before(t.next) {
			continue
		}
		t.next = t.next.Add(t.interval)
		if !now.Before(t.next) {
			t.next = now.Add(t.interval)
		}
		t.handler()
	}
}
