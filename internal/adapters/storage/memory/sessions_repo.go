package memory

import (
	"context"
	"strings"
	"time"

	"cat-breed-search/internal/domain/sessions"

	"github.com/patrickmn/go-cache"
)

const minCleanupInterval = 10 * time.Millisecond

type sessionRepo struct {
	ttl   time.Duration
	items *cache.Cache
}

// NewSessionRepo guarda sesiones vivas en memoria. Una sesión sin uso durante
// ttl se expulsa y se cierra. ttl <= 0 => sin expiración.
func NewSessionRepo(ttl time.Duration) sessions.Repository {
	var c *cache.Cache
	if ttl <= 0 {
		ttl = cache.NoExpiration
		c = cache.New(cache.NoExpiration, 0)
	} else {
		cleanup := ttl / 2
		if cleanup < minCleanupInterval {
			cleanup = minCleanupInterval
		}
		c = cache.New(ttl, cleanup)
	}

	// Delete, DeleteExpired y el janitor pasan por acá; Set sobre una clave
	// existente no.
	c.OnEvicted(func(_ string, v any) {
		if s, ok := v.(*sessions.Session); ok {
			s.Close()
		}
	})

	return &sessionRepo{ttl: ttl, items: c}
}

func (r *sessionRepo) Save(ctx context.Context, s *sessions.Session) error {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return sessions.ErrNotFound
	}
	r.items.Set(s.ID, s, r.ttl)
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*sessions.Session, error) {
	v, ok := r.items.Get(id)
	if !ok {
		return nil, sessions.ErrNotFound
	}
	s := v.(*sessions.Session)

	// renovar TTL; si expiró entre el Get y acá, Replace falla y no la revive
	if err := r.items.Replace(id, s, r.ttl); err != nil {
		return nil, sessions.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items.Get(id); !ok {
		return sessions.ErrNotFound
	}
	r.items.Delete(id)
	return nil
}

func (r *sessionRepo) DeleteAll(ctx context.Context) error {
	for id := range r.items.Items() {
		r.items.Delete(id)
	}
	return nil
}
