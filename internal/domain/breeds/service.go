package breeds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cat-breed-search/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrRequestFailed cubre fallas de red y respuestas no-2xx de cualquiera de
	// los dos endpoints. Es el único tipo de error que ve el usuario.
	ErrRequestFailed = errors.New("request failed")
)

const DefaultLimit = 20

type Options struct {
	Limit int // default DefaultLimit

	// ImageConcurrency acota lookups de imagen simultáneos. 0 = todos a la vez.
	ImageConcurrency int

	Logger logger.Logger
}

type Service struct {
	catalog          Catalog
	limit            int
	imageConcurrency int
	log              logger.Logger
	now              func() time.Time
}

func NewService(catalog Catalog, opts Options) *Service {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		catalog:          catalog,
		limit:            limit,
		imageConcurrency: opts.ImageConcurrency,
		log:              log,
		now:              time.Now,
	}
}

// Fetch busca razas por term y enriquece cada una con su primera imagen.
// La búsqueda termina antes de emitir cualquier lookup de imagen; los lookups
// corren en paralelo y el merge espera a todos. Si uno falla, falla el lote.
func (s *Service) Fetch(ctx context.Context, term string) ([]EnrichedBreed, error) {
	if term == "" {
		return nil, ErrInvalidInput
	}
	start := s.now()

	found, err := s.catalog.SearchBreeds(ctx, term, s.limit)
	if err != nil {
		s.log.Warn("breed search failed", map[string]any{"term": term, "err": err})
		return nil, requestFailed(err)
	}

	out := make([]EnrichedBreed, len(found))
	g, gctx := errgroup.WithContext(ctx)
	if s.imageConcurrency > 0 {
		g.SetLimit(s.imageConcurrency)
	}
	for i, b := range found {
		i, b := i, b
		out[i].Breed = b
		g.Go(func() error {
			imgs, err := s.catalog.SearchImages(gctx, b.ID)
			if err != nil {
				return fmt.Errorf("image lookup %s: %w", b.ID, err)
			}
			if len(imgs) > 0 {
				img := imgs[0]
				out[i].Image = &img
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn("image lookups failed", map[string]any{"term": term, "err": err})
		return nil, requestFailed(err)
	}

	s.log.Debug("fetch completed", map[string]any{
		"term":        term,
		"results":     len(out),
		"duration_ms": s.now().Sub(start).Milliseconds(),
	})
	return out, nil
}

func requestFailed(err error) error {
	if errors.Is(err, ErrRequestFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRequestFailed, err)
}
