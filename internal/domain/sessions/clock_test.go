package sessions

import (
	"sync"
	"time"
)

// fakeClock reemplaza time.AfterFunc: los timers solo disparan cuando el test lo pide.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// armed devuelve los timers que siguen vivos.
func (c *fakeClock) armed() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*fakeTimer, 0)
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireArmed dispara sincrónicamente todos los timers vivos y devuelve cuántos.
func (c *fakeClock) fireArmed() int {
	ts := c.armed()
	c.mu.Lock()
	for _, t := range ts {
		t.fired = true
	}
	c.mu.Unlock()
	for _, t := range ts {
		t.f()
	}
	return len(ts)
}
