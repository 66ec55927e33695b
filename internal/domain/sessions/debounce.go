package sessions

import (
	"sync"
	"time"
	"unicode/utf8"
)

const (
	DefaultQuietPeriod    = 1000 * time.Millisecond
	DefaultMinQueryLength = 3
)

// Timer es lo mínimo que usamos de *time.Timer (inyectable en tests).
type Timer interface {
	Stop() bool
}

// AfterFunc arma f para correr tras d. Por defecto time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer dispara fire(query) solo cuando el input quedó quieto durante
// quiet y tiene al menos minLen caracteres.
//
// Cada Input cancela el timer anterior antes de armar uno nuevo. gen protege
// contra el caso en que Stop llega tarde y el callback ya arrancó: un callback
// de una generación vieja no dispara.
type Debouncer struct {
	mu        sync.Mutex
	quiet     time.Duration
	minLen    int
	afterFunc AfterFunc
	fire      func(query string)

	timer   Timer
	gen     uint64
	stopped bool
}

func NewDebouncer(quiet time.Duration, minLen int, afterFunc AfterFunc, fire func(query string)) *Debouncer {
	if quiet < 0 {
		quiet = 0
	}
	if minLen < 0 {
		minLen = 0
	}
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	return &Debouncer{
		quiet:     quiet,
		minLen:    minLen,
		afterFunc: afterFunc,
		fire:      fire,
	}
}

// Input registra un cambio del query. Devuelve true si quedó un fetch pendiente.
func (d *Debouncer) Input(query string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}

	d.cancelLocked()
	if utf8.RuneCountInString(query) < d.minLen {
		return false
	}

	gen := d.gen
	d.timer = d.afterFunc(d.quiet, func() { d.expire(gen, query) })
	return true
}

// Pending indica si hay un timer armado que aún no disparó.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancela el timer pendiente; Input posteriores se ignoran.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) expire(gen uint64, query string) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	// fuera del lock: fire puede tardar (hace I/O)
	d.fire(query)
}
