package sessions

import (
	"sync"
	"testing"
	"time"
)

type fireRecorder struct {
	mu    sync.Mutex
	fired []string
}

func (r *fireRecorder) fire(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, q)
}

func (r *fireRecorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.fired...)
}

func TestDebouncer_ShortInputNeverFires(t *testing.T) {
	clock := &fakeClock{}
	rec := &fireRecorder{}
	d := NewDebouncer(time.Second, 3, clock.AfterFunc, rec.fire)

	for _, q := range []string{"", "z", "zz", "ñé"} {
		if d.Input(q) {
			t.Fatalf("Input(%q) must not arm a fetch", q)
		}
	}
	if n := clock.fireArmed(); n != 0 {
		t.Fatalf("expected no armed timers, got %d", n)
	}
	if len(rec.calls()) != 0 {
		t.Fatalf("expected no fires, got %#v", rec.calls())
	}
}

func TestDebouncer_OneFirePerQuietPeriod(t *testing.T) {
	clock := &fakeClock{}
	rec := &fireRecorder{}
	d := NewDebouncer(time.Second, 3, clock.AfterFunc, rec.fire)

	for _, q := range []string{"b", "be", "ben", "beng", "benga"} {
		d.Input(q)
	}
	if got := len(clock.armed()); got != 1 {
		t.Fatalf("expected exactly one armed timer, got %d", got)
	}
	if clock.armed()[0].d != time.Second {
		t.Fatalf("expected quiet period 1s, got %s", clock.armed()[0].d)
	}
	if !d.Pending() {
		t.Fatalf("expected pending fetch")
	}

	clock.fireArmed()
	if got := rec.calls(); len(got) != 1 || got[0] != "benga" {
		t.Fatalf("expected single fire with latest query, got %#v", got)
	}
	if d.Pending() {
		t.Fatalf("pending must clear after fire")
	}
}

func TestDebouncer_ShorteningCancelsPending(t *testing.T) {
	clock := &fakeClock{}
	rec := &fireRecorder{}
	d := NewDebouncer(time.Second, 3, clock.AfterFunc, rec.fire)

	d.Input("ben")
	d.Input("be")

	if clock.fireArmed() != 0 || len(rec.calls()) != 0 {
		t.Fatalf("backspacing below min length must cancel the pending fetch")
	}
}

func TestDebouncer_LateCallbackOfStoppedTimerDoesNotFire(t *testing.T) {
	clock := &fakeClock{}
	rec := &fireRecorder{}
	d := NewDebouncer(time.Second, 3, clock.AfterFunc, rec.fire)

	d.Input("ben")
	stale := clock.armed()[0]
	d.Input("beng")

	// simula expiración concurrente con Stop: el callback viejo corre igual
	stale.f()
	if len(rec.calls()) != 0 {
		t.Fatalf("stale callback fired: %#v", rec.calls())
	}

	clock.fireArmed()
	if got := rec.calls(); len(got) != 1 || got[0] != "beng" {
		t.Fatalf("expected only latest query to fire, got %#v", got)
	}
}

func TestDebouncer_StopCancelsAndIgnoresInput(t *testing.T) {
	clock := &fakeClock{}
	rec := &fireRecorder{}
	d := NewDebouncer(time.Second, 3, clock.AfterFunc, rec.fire)

	d.Input("ben")
	pending := clock.armed()[0]
	d.Stop()

	if !pending.stopped {
		t.Fatalf("Stop must stop the pending timer")
	}
	if d.Input("bengal") {
		t.Fatalf("Input after Stop must be ignored")
	}
	pending.f()
	if len(rec.calls()) != 0 {
		t.Fatalf("no fire expected after Stop, got %#v", rec.calls())
	}
}

func TestDebouncer_RealTimer(t *testing.T) {
	done := make(chan string, 1)
	d := NewDebouncer(10*time.Millisecond, 3, nil, func(q string) { done <- q })
	defer d.Stop()

	d.Input("sia")
	select {
	case q := <-done:
		if q != "sia" {
			t.Fatalf("unexpected query %q", q)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timer never fired")
	}
}
