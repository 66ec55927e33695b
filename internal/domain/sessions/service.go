package sessions

import (
	"context"
	"strings"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	fetcher Fetcher
	opts    Options
	log     logger.Logger
	newID   func() string
}

func NewService(repo Repository, fetcher Fetcher, opts Options) *Service {
	opts = opts.withDefaults()
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		opts:    opts,
		log:     opts.Logger,
		newID:   uuid.NewString,
	}
}

func (s *Service) Create(ctx context.Context) (*Session, error) {
	sess := NewSession(s.newID(), s.fetcher, s.opts)
	if err := s.repo.Save(ctx, sess); err != nil {
		sess.Close()
		return nil, err
	}
	s.log.Info("session created", map[string]any{"session_id": sess.ID})
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) SetQuery(ctx context.Context, id, query string) (Snapshot, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SetQuery(query)
}

func (s *Service) Sort(ctx context.Context, id string, key breeds.SortKey) (Snapshot, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Sort(key)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// el repo ya la cierra al sacarla; Close es idempotente
	sess.Close()
	s.log.Info("session deleted", map[string]any{"session_id": id})
	return nil
}

// Shutdown cierra todas las sesiones vivas.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
