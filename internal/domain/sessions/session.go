package sessions

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/platform/logger"
	"cat-breed-search/internal/platform/metrics"
)

var (
	ErrClosed   = errors.New("session closed")
	ErrNotFound = errors.New("not found")
)

// Fetcher es lo que la sesión necesita del fetcher de razas.
type Fetcher interface {
	Fetch(ctx context.Context, term string) ([]breeds.EnrichedBreed, error)
}

type Options struct {
	QuietPeriod    time.Duration // <= 0 => DefaultQuietPeriod
	MinQueryLength int           // <= 0 => DefaultMinQueryLength

	// AfterFunc permite controlar el reloj del debounce en tests.
	AfterFunc AfterFunc

	Logger logger.Logger
}

func (o Options) withDefaults() Options {
	if o.QuietPeriod <= 0 {
		o.QuietPeriod = DefaultQuietPeriod
	}
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = DefaultMinQueryLength
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

// Snapshot es una copia inmutable del estado de una sesión, lista para renderizar.
type Snapshot struct {
	ID        string
	Query     string
	Pending   bool // hay un fetch armado esperando el quiet period
	Loading   bool
	Error     string
	Sort      breeds.SortState
	Results   []breeds.EnrichedBreed
	Revision  uint64
	UpdatedAt time.Time
}

// Session es el contenedor de estado de un widget de búsqueda.
// Todo el estado mutable vive detrás de mu; timers, completions de fetch y
// llamadas de UI se serializan ahí.
type Session struct {
	ID        string
	CreatedAt time.Time

	fetcher   Fetcher
	log       logger.Logger
	now       func() time.Time
	debouncer *Debouncer

	baseCtx  context.Context
	closeCtx context.CancelFunc
	inflight sync.WaitGroup

	mu          sync.Mutex
	query       string
	results     []breeds.EnrichedBreed
	loading     bool
	errMsg      string
	sort        breeds.SortState
	seq         uint64 // id del último fetch emitido
	cancelFetch context.CancelFunc
	revision    uint64
	updatedAt   time.Time
	closed      bool

	subsMu  sync.Mutex
	subs    map[uint64]*subscriber
	nextSub uint64
}

type subscriber struct {
	ch   chan Snapshot
	last uint64 // última revisión entregada
}

func NewSession(id string, fetcher Fetcher, opts Options) *Session {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:       id,
		fetcher:  fetcher,
		log:      opts.Logger.With(map[string]any{"session_id": id}),
		now:      time.Now,
		baseCtx:  ctx,
		closeCtx: cancel,
		sort:     breeds.InitialSortState(),
		subs:     map[uint64]*subscriber{},
	}
	s.CreatedAt = s.now()
	s.updatedAt = s.CreatedAt
	s.debouncer = NewDebouncer(opts.QuietPeriod, opts.MinQueryLength, opts.AfterFunc, s.fetch)

	metrics.ActiveSessions.Inc()
	return s
}

// SetQuery registra un cambio del input. Si el query alcanza el largo mínimo,
// queda un fetch pendiente para dentro del quiet period; cualquier pendiente
// anterior se cancela.
func (s *Session) SetQuery(q string) (Snapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	s.query = q
	s.debouncer.Input(q)
	snap := s.bumpLocked()
	s.mu.Unlock()

	s.publish(snap)
	return snap, nil
}

// Sort reordena los resultados actuales. Misma clave invierte dirección,
// otra clave arranca en asc; la dirección nueva se aplica en esta misma llamada.
func (s *Session) Sort(key breeds.SortKey) (Snapshot, error) {
	if !slices.Contains(breeds.SortKeys, key) {
		return Snapshot{}, breeds.ErrUnknownSortKey
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	s.sort = s.sort.Toggle(key)
	s.results = breeds.Sort(s.results, s.sort.Key, s.sort.Direction)
	snap := s.bumpLocked()
	s.mu.Unlock()

	s.log.Debug("results sorted", map[string]any{
		"key":       snap.Sort.Key,
		"direction": snap.Sort.Direction,
	})
	s.publish(snap)
	return snap, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe devuelve un canal con el snapshot actual y luego uno por cada
// cambio. Capacidad 1, gana el último: un consumidor lento se saltea estados
// intermedios pero nunca bloquea la sesión. El canal se cierra con Close o
// al llamar a la función devuelta.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.mu.Lock()
	closed := s.closed
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if closed || s.subs == nil {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = &subscriber{ch: ch, last: snap.Revision}
	ch <- snap

	return ch, func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub.ch)
		}
	}
}

// Close detiene el debounce, cancela el fetch en vuelo, espera a que termine
// y cierra los canales de suscripción. Idempotente.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.debouncer.Stop()
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	s.closeCtx()
	s.mu.Unlock()

	s.inflight.Wait()

	s.subsMu.Lock()
	for id, sub := range s.subs {
		delete(s.subs, id)
		close(sub.ch)
	}
	s.subs = nil
	s.subsMu.Unlock()

	metrics.ActiveSessions.Dec()
	s.log.Debug("session closed", nil)
}

// fetch corre en la goroutine del timer del debounce.
func (s *Session) fetch(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	id := s.seq
	if s.cancelFetch != nil {
		// supersede: el fetch anterior ya no puede ganar
		s.cancelFetch()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancelFetch = cancel
	s.loading = true
	s.inflight.Add(1)
	snap := s.bumpLocked()
	s.mu.Unlock()

	defer s.inflight.Done()
	s.publish(snap)

	s.log.Debug("fetch started", map[string]any{"query": query, "request_id": id})
	items, err := s.fetcher.Fetch(ctx, query)
	cancel()

	s.mu.Lock()
	if s.closed || id != s.seq {
		s.mu.Unlock()
		metrics.FetchesTotal.WithLabelValues("superseded").Inc()
		s.log.Debug("stale fetch discarded", map[string]any{"query": query, "request_id": id})
		return
	}
	s.cancelFetch = nil
	s.loading = false
	if err != nil {
		// los resultados previos quedan como estaban
		s.errMsg = err.Error()
	} else {
		s.results = items
		s.errMsg = ""
	}
	snap = s.bumpLocked()
	s.mu.Unlock()

	if err != nil {
		metrics.FetchesTotal.WithLabelValues("error").Inc()
		s.log.Warn("fetch failed", map[string]any{"query": query, "request_id": id, "err": err})
	} else {
		metrics.FetchesTotal.WithLabelValues("ok").Inc()
		s.log.Info("fetch completed", map[string]any{"query": query, "request_id": id, "results": len(items)})
	}
	s.publish(snap)
}

func (s *Session) bumpLocked() Snapshot {
	s.revision++
	s.updatedAt = s.now()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        s.ID,
		Query:     s.query,
		Pending:   s.debouncer.Pending(),
		Loading:   s.loading,
		Error:     s.errMsg,
		Sort:      s.sort,
		Results:   slices.Clone(s.results),
		Revision:  s.revision,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) publish(snap Snapshot) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, sub := range s.subs {
		// dos publishers pueden competir después de soltar mu; nunca entregamos uno viejo
		if snap.Revision <= sub.last {
			continue
		}
		sub.last = snap.Revision

		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
	}
}
