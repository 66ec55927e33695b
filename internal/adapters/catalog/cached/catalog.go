package cached

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"cat-breed-search/internal/domain/breeds"
	"cat-breed-search/internal/platform/metrics"

	"github.com/patrickmn/go-cache"
)

const (
	prefixBreeds = "breeds"
	prefixImages = "images"
)

// Catalog decora un breeds.Catalog con un cache en memoria con TTL.
// Solo se cachean respuestas exitosas; un error siempre vuelve al upstream.
type Catalog struct {
	next  breeds.Catalog
	cache *cache.Cache
}

var _ breeds.Catalog = (*Catalog)(nil)

// New devuelve next tal cual si ttl <= 0.
func New(next breeds.Catalog, ttl time.Duration) breeds.Catalog {
	if ttl <= 0 {
		return next
	}
	return &Catalog{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *Catalog) SearchBreeds(ctx context.Context, term string, limit int) ([]breeds.Breed, error) {
	// La búsqueda de razas del catálogo no distingue mayúsculas ("Ben" y "ben"
	// devuelven lo mismo), así que comparten entrada. Upstream recibe el término tal cual.
	key := prefixBreeds + ":" + strconv.Itoa(limit) + ":" + strings.ToLower(term)
	if v, ok := c.cache.Get(key); ok {
		metrics.CatalogCacheTotal.WithLabelValues(prefixBreeds, "hit").Inc()
		return slices.Clone(v.([]breeds.Breed)), nil
	}
	metrics.CatalogCacheTotal.WithLabelValues(prefixBreeds, "miss").Inc()

	out, err := c.next.SearchBreeds(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, slices.Clone(out))
	return out, nil
}

func (c *Catalog) SearchImages(ctx context.Context, breedID string) ([]breeds.Image, error) {
	key := prefixImages + ":" + breedID
	if v, ok := c.cache.Get(key); ok {
		metrics.CatalogCacheTotal.WithLabelValues(prefixImages, "hit").Inc()
		return slices.Clone(v.([]breeds.Image)), nil
	}
	metrics.CatalogCacheTotal.WithLabelValues(prefixImages, "miss").Inc()

	out, err := c.next.SearchImages(ctx, breedID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, slices.Clone(out))
	return out, nil
}
