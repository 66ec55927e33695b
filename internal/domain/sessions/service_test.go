package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cat-breed-search/internal/domain/breeds"
)

type mapRepo struct {
	mu    sync.Mutex
	items map[string]*Session
}

func newMapRepo() *mapRepo { return &mapRepo{items: map[string]*Session{}} }

func (r *mapRepo) Save(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = s
	return nil
}

func (r *mapRepo) GetByID(_ context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *mapRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	s, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.Close()
	return nil
}

func (r *mapRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		_ = r.Delete(ctx, id)
	}
	return nil
}

func newTestService(f Fetcher) (*Service, *fakeClock, *mapRepo) {
	clock := &fakeClock{}
	repo := newMapRepo()
	svc := NewService(repo, f, Options{AfterFunc: clock.AfterFunc})
	n := 0
	svc.newID = func() string {
		n++
		return "sess-" + string(rune('0'+n))
	}
	return svc, clock, repo
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _, _ := newTestService(newTestFetcher())
	ctx := context.Background()
	defer func() { _ = svc.Shutdown(ctx) }()

	sess, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID != "sess-1" {
		t.Fatalf("unexpected id %q", sess.ID)
	}

	got, err := svc.Get(ctx, " sess-1 ")
	if err != nil || got != sess {
		t.Fatalf("Get: %v (%p vs %p)", err, got, sess)
	}

	if _, err := svc.Get(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
	if _, err := svc.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_QueryThenSort(t *testing.T) {
	f := newTestFetcher()
	f.results["cat"] = fetchResult{items: []breeds.EnrichedBreed{
		{Breed: breeds.Breed{ID: "siam", Name: "Siamese", LifeSpan: "12 - 15"}},
		{Breed: breeds.Breed{ID: "beng", Name: "Bengal", LifeSpan: "12 - 16"}},
	}}
	svc, clock, _ := newTestService(f)
	ctx := context.Background()
	defer func() { _ = svc.Shutdown(ctx) }()

	sess, _ := svc.Create(ctx)
	if _, err := svc.SetQuery(ctx, sess.ID, "cat"); err != nil {
		t.Fatalf("SetQuery: %v", err)
	}
	if n := clock.fireArmed(); n != 1 {
		t.Fatalf("expected one armed timer, got %d", n)
	}

	snap, err := svc.Sort(ctx, sess.ID, breeds.SortByLifeSpan)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if snap.Results[0].ID != "siam" {
		t.Fatalf("expected shorter life span first, got %s", snap.Results[0].ID)
	}

	if _, err := svc.Sort(ctx, "missing", breeds.SortByName); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_DeleteClosesSession(t *testing.T) {
	svc, _, repo := newTestService(newTestFetcher())
	ctx := context.Background()

	sess, _ := svc.Create(ctx)
	if err := svc.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := sess.SetQuery("bengal"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected closed session, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected repo empty")
	}
	if err := svc.Delete(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_ShutdownClosesAll(t *testing.T) {
	svc, _, _ := newTestService(newTestFetcher())
	ctx := context.Background()

	a, _ := svc.Create(ctx)
	b, _ := svc.Create(ctx)
	if err := svc.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	for _, s := range []*Session{a, b} {
		if _, err := s.Sort(breeds.SortByName); !errors.Is(err, ErrClosed) {
			t.Fatalf("session %s still open", s.ID)
		}
	}
}
